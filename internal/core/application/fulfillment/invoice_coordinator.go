package fulfillment

import (
	"context"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// InvoiceCoordinator derives the invoice of a process pass.
//
// Only material no existing invoice represents is billed, so repeated passes never
// duplicate invoices. The type follows the sign of the net amount. Sale invoices
// triggered by Done shipments of an order invoiced on shipment are posted right
// away, as are invoices with nothing to pay. Credit notes wait for PostInvoice.
type InvoiceCoordinator struct {
	builder services.InvoiceLineBuilder
	config  ports.ConfigurationProvider
	newID   func() kernel.UUID
	logger  *slog.Logger
}

func NewInvoiceCoordinator(
	builder services.InvoiceLineBuilder,
	config ports.ConfigurationProvider,
	logger *slog.Logger,
) *InvoiceCoordinator {
	return &InvoiceCoordinator{
		builder: builder,
		config:  config,
		newID:   kernel.NewUUID,
		logger:  logger.With("component", "invoice_coordinator"),
	}
}

// Derive creates the invoice of the pending material and returns it, or nil when
// nothing is left to bill. A round-off line without configured round down account
// fails with *errs.ConfigurationError.
func (c *InvoiceCoordinator) Derive(
	ctx context.Context,
	invoices ports.InvoiceRepository,
	o *order.Order,
	shipments []*shipment.Shipment,
) (*invoice.Invoice, error) {
	existing, err := invoices.ListByOrder(ctx, o.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	material := c.builder.PendingMaterial(o, shipments, existing)
	if len(material) == 0 {
		return nil, nil
	}

	account := ""
	if services.NeedsRoundDownAccount(material) {
		account, err = c.config.RoundDownAccount(ctx, o.Currency())
		if err != nil {
			return nil, fmt.Errorf("failed to read round down account: %w", err)
		}
	}

	typ := services.InvoiceTypeFor(material)
	lines, err := c.builder.BuildLines(material, typ, account, o.Currency())
	if err != nil {
		return nil, err
	}

	trigger := triggerOf(material)
	inv, err := invoice.NewInvoice(c.newID(), o.ID(), typ, trigger, o.Currency(), lines)
	if err != nil {
		return nil, err
	}

	postNow := typ == invoice.Sale && o.InvoiceMethod() == order.InvoiceOnShipment && trigger.IsShipmentDone()
	if postNow || inv.TotalAmount().IsZero() {
		if err := inv.Post(); err != nil {
			return nil, err
		}
	}

	if err := invoices.Add(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to add invoice: %w", err)
	}

	c.logger.InfoContext(ctx, "Invoice derived",
		"order_id", o.ID().String(),
		"invoice_id", inv.ID().String(),
		"type", inv.Type().String(),
		"status", inv.Status().String(),
		"total", inv.TotalAmount().String())
	return inv, nil
}

func triggerOf(material []services.Material) invoice.Trigger {
	var ids []kernel.UUID
	seen := make(map[kernel.UUID]struct{})
	for _, m := range material {
		id := m.ShipmentID()
		if id == nil {
			continue
		}
		if _, ok := seen[*id]; ok {
			continue
		}
		seen[*id] = struct{}{}
		ids = append(ids, *id)
	}
	if len(ids) == 0 {
		return invoice.OrderTrigger()
	}
	return invoice.ShipmentTrigger(ids...)
}

// Rollups computes the shipment and invoice states of an order.
func Rollups(shipments []*shipment.Shipment, invoices []*invoice.Invoice) (order.ShipmentState, order.InvoiceState) {
	shipmentState := order.ShipmentStateNone
	if len(shipments) > 0 {
		shipmentState = order.ShipmentStateSent
		for _, s := range shipments {
			if !s.IsDone() {
				shipmentState = order.ShipmentStateWaiting
				break
			}
		}
	}

	invoiceState := order.InvoiceStateNone
	for _, inv := range invoices {
		if !inv.IsActive() {
			continue
		}
		if inv.Status() != invoice.Paid {
			invoiceState = order.InvoiceStateWaiting
			break
		}
		invoiceState = order.InvoiceStatePaid
	}
	return shipmentState, invoiceState
}
