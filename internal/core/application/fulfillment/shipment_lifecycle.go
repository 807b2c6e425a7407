package fulfillment

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ShipmentLifecycle applies shipment transitions and persists each shipment right
// after its transition. Stock follows the transitions: assignment reserves,
// outgoing completion consumes and return completion replenishes.
type ShipmentLifecycle struct {
	shipments ports.ShipmentRepository
	stock     ports.StockReservationService
}

func NewShipmentLifecycle(shipments ports.ShipmentRepository, stock ports.StockReservationService) ShipmentLifecycle {
	return ShipmentLifecycle{shipments: shipments, stock: stock}
}

// TryAssign reserves stock for the whole batch before any shipment changes state.
// On shortage it returns *errs.StockShortageError and every shipment keeps its status.
func (l ShipmentLifecycle) TryAssign(ctx context.Context, batch []*shipment.Shipment) error {
	for _, s := range batch {
		if err := s.ValidateAssign(); err != nil {
			return err
		}
	}

	unsatisfied, err := l.stock.TryAssign(ctx, batch)
	if err != nil {
		return fmt.Errorf("failed to reserve stock: %w", err)
	}
	if len(unsatisfied) > 0 {
		return errs.NewStockShortageError(uniqueNames(unsatisfied))
	}

	return l.apply(ctx, batch, (*shipment.Shipment).Assign)
}

// Pack packs assigned shipments.
func (l ShipmentLifecycle) Pack(ctx context.Context, batch []*shipment.Shipment) error {
	return l.apply(ctx, batch, (*shipment.Shipment).Pack)
}

// Receive receives returns.
func (l ShipmentLifecycle) Receive(ctx context.Context, batch []*shipment.Shipment) error {
	return l.apply(ctx, batch, (*shipment.Shipment).Receive)
}

// MarkDone finishes packed shipments and received returns and moves their stock.
func (l ShipmentLifecycle) MarkDone(ctx context.Context, batch []*shipment.Shipment) error {
	var outgoing, returns []*shipment.Shipment
	for _, s := range batch {
		if s.Direction() == shipment.Return {
			returns = append(returns, s)
		} else {
			outgoing = append(outgoing, s)
		}
	}

	if err := l.apply(ctx, batch, (*shipment.Shipment).Done); err != nil {
		return err
	}
	if len(outgoing) > 0 {
		if err := l.stock.Consume(ctx, outgoing); err != nil {
			return fmt.Errorf("failed to consume stock: %w", err)
		}
	}
	if len(returns) > 0 {
		if err := l.stock.Replenish(ctx, returns); err != nil {
			return fmt.Errorf("failed to replenish stock: %w", err)
		}
	}
	return nil
}

// Wait hands outgoing shipments over to external logistics.
func (l ShipmentLifecycle) Wait(ctx context.Context, batch []*shipment.Shipment) error {
	return l.apply(ctx, batch, (*shipment.Shipment).Wait)
}

func (l ShipmentLifecycle) apply(
	ctx context.Context,
	batch []*shipment.Shipment,
	transition func(*shipment.Shipment) error,
) error {
	for _, s := range batch {
		if err := transition(s); err != nil {
			return err
		}
		if err := l.shipments.Update(ctx, s); err != nil {
			return fmt.Errorf("failed to update shipment %s: %w", s.ID(), err)
		}
	}
	return nil
}

func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	unique := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, name)
	}
	return unique
}
