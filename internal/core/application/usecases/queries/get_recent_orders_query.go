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
	ErrGetRecentOrdersQueryIsNotConstructed = errors.New(
		"GetRecentOrdersQuery must be created via NewGetRecentOrdersQuery constructor",
	)
)

const (
	// DefaultRecentOrdersDays is how far back recent orders reach when the caller
	// gives no window.
	DefaultRecentOrdersDays = 5
	// DefaultRecentOrdersLimit caps the result when the caller gives no limit.
	DefaultRecentOrdersLimit = 100
)

// GetRecentOrdersQuery lists the orders still in progress, from Draft to
// Processing, whose order row or lines changed within the last days. The most
// recently touched orders come first.
type GetRecentOrdersQuery struct {
	days  int
	limit int

	guard guard.ConstructorGuard
}

// NewGetRecentOrdersQuery creates the query. Zero values select
// DefaultRecentOrdersDays and DefaultRecentOrdersLimit.
func NewGetRecentOrdersQuery(days, limit int) (GetRecentOrdersQuery, error) {
	if days < 0 {
		return GetRecentOrdersQuery{}, errs.NewValueIsOutOfRangeError("days", days, 0, nil)
	}
	if limit < 0 {
		return GetRecentOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 0, nil)
	}
	if days == 0 {
		days = DefaultRecentOrdersDays
	}
	if limit == 0 {
		limit = DefaultRecentOrdersLimit
	}
	return GetRecentOrdersQuery{days: days, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRecentOrdersQuery) Days() int {
	return q.days
}

func (q GetRecentOrdersQuery) Limit() int {
	return q.limit
}

// Since returns the oldest change the query accepts, relative to now.
func (q GetRecentOrdersQuery) Since(now time.Time) time.Time {
	return now.AddDate(0, 0, -q.days)
}

func (q GetRecentOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetRecentOrdersQueryIsNotConstructed)
}

// GetRecentOrdersQueryResponse is one recently touched order.
type GetRecentOrdersQueryResponse struct {
	ID        kernel.UUID
	Party     string
	SaleDate  time.Time
	Status    order.Status
	TouchedAt time.Time
}
