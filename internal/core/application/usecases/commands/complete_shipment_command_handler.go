package commands

import (
	"context"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/fulfillment"
	"fulfillment/internal/core/domain/model/shipment"
)

// OrderProcessor runs a process pass; implemented by ProcessOrderCommandHandler.
type OrderProcessor interface {
	Handle(ctx context.Context, cmd ProcessOrderCommand) error
}

// CompleteShipmentCommandHandler drives a shipment handed over to logistics to Done
// and then processes its order again, so shipment-driven invoices get derived.
type CompleteShipmentCommandHandler struct {
	uowFactory UoWFactory
	processor  OrderProcessor
	logger     *slog.Logger
}

func NewCompleteShipmentCommandHandler(
	uowFactory UoWFactory,
	processor OrderProcessor,
	logger *slog.Logger,
) CompleteShipmentCommandHandler {
	return CompleteShipmentCommandHandler{
		uowFactory: uowFactory,
		processor:  processor,
		logger:     logger.With("component", "complete_shipment"),
	}
}

func (h *CompleteShipmentCommandHandler) Handle(ctx context.Context, cmd CompleteShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	s, err := h.complete(ctx, cmd)
	if err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "Shipment completed",
		"shipment_id", s.ID().String(), "order_id", s.OrderID().String())

	processCmd, err := NewProcessOrderCommand(s.OrderID())
	if err != nil {
		return err
	}
	if err = h.processor.Handle(ctx, processCmd); err != nil {
		return fmt.Errorf("shipment completed but order processing failed: %w", err)
	}
	return nil
}

func (h *CompleteShipmentCommandHandler) complete(ctx context.Context, cmd CompleteShipmentCommand) (*shipment.Shipment, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	s, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return nil, err
	}

	// the order row lock serializes completion with process passes
	if _, err = uow.OrderRepository().GetForUpdate(ctx, s.OrderID()); err != nil {
		return nil, err
	}

	lifecycle := fulfillment.NewShipmentLifecycle(uow.ShipmentRepository(), uow.StockReservationService())
	batch := []*shipment.Shipment{s}

	if s.Direction() == shipment.Return {
		if s.Status() == shipment.Draft {
			if err = lifecycle.Receive(ctx, batch); err != nil {
				return nil, err
			}
		}
	} else {
		if s.Status() == shipment.Draft || s.Status() == shipment.Waiting {
			if err = lifecycle.TryAssign(ctx, batch); err != nil {
				return nil, err
			}
		}
		if s.Status() == shipment.Assigned {
			if err = lifecycle.Pack(ctx, batch); err != nil {
				return nil, err
			}
		}
	}

	if err = lifecycle.MarkDone(ctx, batch); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return s, nil
}
