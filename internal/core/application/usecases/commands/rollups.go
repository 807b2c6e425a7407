package commands

import (
	"context"

	"fulfillment/internal/core/application/fulfillment"
	"fulfillment/internal/core/domain/model/kernel"
)

// refreshRollups recomputes the shipment and invoice states of an order after one
// of its shipments or invoices changed outside a process pass.
func refreshRollups(ctx context.Context, uow UoW, orderID kernel.UUID) error {
	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	if err != nil {
		return err
	}
	shipments, err := uow.ShipmentRepository().ListByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	invoices, err := uow.InvoiceRepository().ListByOrder(ctx, orderID)
	if err != nil {
		return err
	}

	if _, err = o.UpdateRollups(fulfillment.Rollups(shipments, invoices)); err != nil {
		return err
	}
	return uow.OrderRepository().Update(ctx, o)
}
