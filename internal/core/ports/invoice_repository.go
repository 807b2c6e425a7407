package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
)

// InvoiceRepository defines the persistence contract for invoices, cancelled ones
// included: they take part in the non-duplication bookkeeping.
type InvoiceRepository interface {
	Add(ctx context.Context, aggregate *invoice.Invoice) error
	Update(ctx context.Context, aggregate *invoice.Invoice) error
	Get(ctx context.Context, id kernel.UUID) (*invoice.Invoice, error)

	// ListByOrder returns every invoice of an order in creation order.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*invoice.Invoice, error)
}
