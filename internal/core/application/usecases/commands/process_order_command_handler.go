package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/fulfillment"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ProcessOrderCommandHandler is the re-entrant entry point of order fulfillment.
//
// One pass, inside one unit of work:
//  1. lock the order (optional OrderLocker, then the order row)
//  2. return early for Done and Cancelled orders, refuse unconfirmed ones
//  3. group the quantities not shipped yet
//  4. create shipments and auto-fulfill pick-up batches
//  5. derive the invoice of the material not billed yet
//  6. recompute the rollups, completing the order when sent and paid
//
// Confirmed orders are no longer editable, so the round-off line is billed as it
// was reconciled before confirmation.
//
// Any error rolls the whole pass back: a stock shortage leaves no shipment, invoice
// or stock change behind, while the results of earlier passes stay untouched.
//
// Example:
//
//	cmd, _ := NewProcessOrderCommand(orderID)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    var shortage *errs.StockShortageError
//	    if errors.As(err, &shortage) {
//	        // restock, then process again
//	    }
//	    return err
//	}
type ProcessOrderCommandHandler struct {
	uowFactory   UoWFactory
	locker       ports.OrderLocker
	grouper      services.OrderLineGrouper
	orchestrator *fulfillment.AutoFulfillmentOrchestrator
	coordinator  *fulfillment.InvoiceCoordinator
	logger       *slog.Logger
}

// NewProcessOrderCommandHandler creates the handler. locker may be nil when a single
// instance serves the orders.
func NewProcessOrderCommandHandler(
	uowFactory UoWFactory,
	locker ports.OrderLocker,
	grouper services.OrderLineGrouper,
	orchestrator *fulfillment.AutoFulfillmentOrchestrator,
	coordinator *fulfillment.InvoiceCoordinator,
	logger *slog.Logger,
) ProcessOrderCommandHandler {
	return ProcessOrderCommandHandler{
		uowFactory:   uowFactory,
		locker:       locker,
		grouper:      grouper,
		orchestrator: orchestrator,
		coordinator:  coordinator,
		logger:       logger.With("component", "order_processor"),
	}
}

func (h *ProcessOrderCommandHandler) Handle(ctx context.Context, cmd ProcessOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if h.locker != nil {
		unlock, err := h.locker.Lock(ctx, cmd.OrderID())
		if err != nil {
			return err
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				h.logger.WarnContext(ctx, "Failed to release order lock",
					"order_id", cmd.OrderID().String(), "error", err)
			}
		}()
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if o.Status().IsFinal() {
		h.logger.DebugContext(ctx, "Order needs no processing",
			"order_id", o.ID().String(), "status", o.Status().String())
		return nil
	}
	if o.Status() != order.Confirmed && o.Status() != order.Processing {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s order must be confirmed before processing", o.Status()),
		)
	}

	if err = o.StartProcessing(); err != nil {
		return err
	}

	existing, err := uow.ShipmentRepository().ListByOrder(ctx, o.ID())
	if err != nil {
		return err
	}

	groups := h.grouper.Group(o, services.ShippedQuantitiesOf(existing))
	created, err := h.orchestrator.Fulfill(ctx, uow, o, groups)
	if err != nil {
		return err
	}
	shipments := append(existing, created...)

	if _, err = h.coordinator.Derive(ctx, uow.InvoiceRepository(), o, shipments); err != nil {
		return err
	}

	invoices, err := uow.InvoiceRepository().ListByOrder(ctx, o.ID())
	if err != nil {
		return err
	}
	done, err := o.UpdateRollups(fulfillment.Rollups(shipments, invoices))
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "Order processed",
		"order_id", o.ID().String(),
		"status", o.Status().String(),
		"shipment_state", o.ShipmentState().String(),
		"invoice_state", o.InvoiceState().String(),
		"completed", done)
	return nil
}

// IsUserFacing reports whether a process error is meant for the person who asked
// for the pass rather than for operators.
func IsUserFacing(err error) bool {
	return errors.Is(err, errs.ErrStockShortage) ||
		errors.Is(err, errs.ErrConfigurationIsMissing) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, ports.ErrOrderIsLocked)
}
