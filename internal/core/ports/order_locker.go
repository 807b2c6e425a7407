package ports

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
)

// ErrOrderIsLocked is returned when another process call holds the order.
var ErrOrderIsLocked = errors.New("order is being processed")

// OrderLocker enforces a single writer per order across service instances.
type OrderLocker interface {
	// Lock acquires the order lock. The returned function releases it.
	Lock(ctx context.Context, orderID kernel.UUID) (func(context.Context) error, error)
}
