package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/shipment"
)

// StockReservationService reserves and moves warehouse stock for shipments.
// It runs inside the unit of work of the caller.
type StockReservationService interface {
	// TryAssign reserves the stock of every move of the shipments, all or nothing.
	// When one move cannot be satisfied nothing is reserved and the names of the
	// unsatisfied products are returned with a nil error.
	TryAssign(ctx context.Context, shipments []*shipment.Shipment) ([]string, error)

	// Consume removes the reserved quantities of Done outgoing shipments from stock.
	Consume(ctx context.Context, shipments []*shipment.Shipment) error

	// Replenish adds the quantities of Done returns back to stock.
	Replenish(ctx context.Context, shipments []*shipment.Shipment) error
}
