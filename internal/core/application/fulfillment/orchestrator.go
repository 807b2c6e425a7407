package fulfillment

import (
	"context"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// FulfillmentPolicy decides which new shipments are driven to Done in the same
// process call.
type FulfillmentPolicy interface {
	AutoFulfill(o *order.Order, s *shipment.Shipment) bool
}

// PickUpPolicy auto-fulfills pick-up shipments and leaves the others to logistics.
type PickUpPolicy struct{}

func (PickUpPolicy) AutoFulfill(_ *order.Order, s *shipment.Shipment) bool {
	return s.DeliveryMode() == kernel.PickUp
}

// Store is the part of a unit of work the orchestrator writes through.
type Store interface {
	OrderRepository() ports.OrderRepository
	ShipmentRepository() ports.ShipmentRepository
	StockReservationService() ports.StockReservationService
}

// AutoFulfillmentOrchestrator creates the shipments of new shipment groups and
// drives them as far as the policy allows:
//   - manual shipment method: no shipment is created
//   - outgoing, not auto-fulfilled: Waiting
//   - outgoing, auto-fulfilled: assigned as one batch, then packed and done
//   - returns, auto-fulfilled: received then done
//   - returns, not auto-fulfilled: Draft
//
// The order is persisted as Processing before stock is assigned.
type AutoFulfillmentOrchestrator struct {
	policy FulfillmentPolicy
	newID  func() kernel.UUID
	logger *slog.Logger
}

func NewAutoFulfillmentOrchestrator(policy FulfillmentPolicy, logger *slog.Logger) *AutoFulfillmentOrchestrator {
	if policy == nil {
		policy = PickUpPolicy{}
	}
	return &AutoFulfillmentOrchestrator{
		policy: policy,
		newID:  kernel.NewUUID,
		logger: logger.With("component", "auto_fulfillment"),
	}
}

// Fulfill creates and progresses the shipments of the groups and returns them.
// A pick-up stock shortage aborts the call with *errs.StockShortageError; the caller
// rolls back its unit of work.
func (f *AutoFulfillmentOrchestrator) Fulfill(
	ctx context.Context,
	store Store,
	o *order.Order,
	groups []services.ShipmentGroup,
) ([]*shipment.Shipment, error) {
	if len(groups) == 0 {
		return nil, nil
	}
	if o.ShipmentMethod() == order.ShipmentManual {
		f.logger.DebugContext(ctx, "Manual shipment method, no shipment created",
			"order_id", o.ID().String(), "groups", len(groups))
		return nil, nil
	}

	lifecycle := NewShipmentLifecycle(store.ShipmentRepository(), store.StockReservationService())

	created := make([]*shipment.Shipment, 0, len(groups))
	var waiting, pickUp, autoReturns []*shipment.Shipment
	for _, g := range groups {
		s, err := f.newShipment(o, g)
		if err != nil {
			return nil, err
		}
		if err := store.ShipmentRepository().Add(ctx, s); err != nil {
			return nil, fmt.Errorf("failed to add shipment: %w", err)
		}
		created = append(created, s)

		auto := f.policy.AutoFulfill(o, s)
		switch {
		case s.Direction() == shipment.Return && auto:
			autoReturns = append(autoReturns, s)
		case s.Direction() == shipment.Return:
			// stays Draft until logistics receives it
		case auto:
			pickUp = append(pickUp, s)
		default:
			waiting = append(waiting, s)
		}
	}

	if err := lifecycle.Wait(ctx, waiting); err != nil {
		return nil, err
	}

	if len(autoReturns) > 0 {
		if err := lifecycle.Receive(ctx, autoReturns); err != nil {
			return nil, err
		}
		if err := lifecycle.MarkDone(ctx, autoReturns); err != nil {
			return nil, err
		}
	}

	if len(pickUp) > 0 {
		if err := o.StartProcessing(); err != nil {
			return nil, err
		}
		if err := store.OrderRepository().Update(ctx, o); err != nil {
			return nil, fmt.Errorf("failed to update order: %w", err)
		}
		if err := lifecycle.TryAssign(ctx, pickUp); err != nil {
			f.logger.InfoContext(ctx, "Pick-up batch cannot be assigned",
				"order_id", o.ID().String(), "error", err)
			return nil, err
		}
		if err := lifecycle.Pack(ctx, pickUp); err != nil {
			return nil, err
		}
		if err := lifecycle.MarkDone(ctx, pickUp); err != nil {
			return nil, err
		}
	}

	f.logger.InfoContext(ctx, "Shipments created",
		"order_id", o.ID().String(),
		"shipments", len(created),
		"auto_fulfilled", len(pickUp)+len(autoReturns),
		"waiting", len(waiting))
	return created, nil
}

func (f *AutoFulfillmentOrchestrator) newShipment(o *order.Order, g services.ShipmentGroup) (*shipment.Shipment, error) {
	moves := make([]*shipment.Move, 0, len(g.Lines))
	for _, gl := range g.Lines {
		product := gl.Line.Product()
		m, err := shipment.NewMove(f.newID(), gl.Line.ID(), product.ID(), product.Name(), gl.Quantity)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return shipment.NewShipment(f.newID(), o.ID(), g.Key.Direction, g.Key.DeliveryMode,
		g.Key.Warehouse, g.Key.PlannedDate, moves)
}
