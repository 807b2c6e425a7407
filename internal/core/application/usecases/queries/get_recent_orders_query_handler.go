package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRecentOrdersQueryHandler reads recently touched orders. An order is touched
// when its row is updated or one of its lines is created.
type GetRecentOrdersQueryHandler struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGetRecentOrdersQueryHandler(db *gorm.DB) GetRecentOrdersQueryHandler {
	return GetRecentOrdersQueryHandler{db: db, now: time.Now}
}

func (h GetRecentOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetRecentOrdersQuery,
) ([]GetRecentOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetRecentOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.party,
			o.sale_date,
			o.status,
			GREATEST(o.updated_at, COALESCE(MAX(l.created_at), o.updated_at)) AS touched_at
		FROM orders o
		LEFT JOIN order_lines l ON l.order_id = o.id
		WHERE o.status IN (?, ?, ?, ?)
		GROUP BY o.id
		HAVING GREATEST(o.updated_at, COALESCE(MAX(l.created_at), o.updated_at)) >= ?
		ORDER BY touched_at DESC, o.id
		LIMIT ?
	`,
		int(order.Draft), int(order.Quotation), int(order.Confirmed), int(order.Processing),
		query.Since(h.now()), query.Limit(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetRecentOrdersQueryResponse
		var id uuid.UUID
		var status int

		if err = rows.Scan(&id, &resp.Party, &resp.SaleDate, &status, &resp.TouchedAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.Status = order.Status(status)

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
