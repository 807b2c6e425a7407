package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetPendingOrdersQueryIsNotConstructed = errors.New(
		"GetPendingOrdersQuery must be created via NewGetPendingOrdersQuery constructor",
	)
)

// DefaultPendingOrdersLimit caps the result when the caller gives no limit.
const DefaultPendingOrdersLimit = 100

// GetPendingOrdersQuery lists the orders that still need processing passes:
// Confirmed orders never processed and Processing orders waiting for shipments
// or payments. Oldest sales come first.
//
// Example:
//
//	query, err := NewGetPendingOrdersQuery(50)
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type GetPendingOrdersQuery struct {
	limit int

	guard guard.ConstructorGuard
}

// NewGetPendingOrdersQuery creates the query. A zero limit means DefaultPendingOrdersLimit.
func NewGetPendingOrdersQuery(limit int) (GetPendingOrdersQuery, error) {
	if limit < 0 {
		return GetPendingOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 0, nil)
	}
	if limit == 0 {
		limit = DefaultPendingOrdersLimit
	}
	return GetPendingOrdersQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPendingOrdersQuery) Limit() int {
	return q.limit
}

func (q GetPendingOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingOrdersQueryIsNotConstructed)
}

// GetPendingOrdersQueryResponse is one pending order.
type GetPendingOrdersQueryResponse struct {
	ID            kernel.UUID
	Party         string
	SaleDate      time.Time
	Status        order.Status
	ShipmentState order.ShipmentState
	InvoiceState  order.InvoiceState
}
