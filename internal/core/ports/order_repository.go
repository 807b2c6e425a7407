// Package ports defines the contracts between the fulfillment core and its
// infrastructure: repositories, stock reservation, configuration and locking.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Lines are stored and loaded together with their order.
type OrderRepository interface {
	// Add persists a new order with its lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists an existing order and replaces its lines.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order with its lines.
	// Returns *errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate loads an order like Get and locks its row until the end of
	// the transaction.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// FindIDsByStatus lists up to limit order identifiers in one of the statuses,
	// oldest sale date first.
	FindIDsByStatus(ctx context.Context, statuses []order.Status, limit int) ([]kernel.UUID, error)
}
