package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingOrdersQueryHandler reads pending orders straight from the orders table.
//
// Example:
//
//	handler := NewGetPendingOrdersQueryHandler(db)
//	query, _ := NewGetPendingOrdersQuery(0)
//
//	pending, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	for _, o := range pending {
//	    fmt.Printf("%s %s shipments=%s invoices=%s\n", o.ID, o.Status, o.ShipmentState, o.InvoiceState)
//	}
type GetPendingOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetPendingOrdersQueryHandler(db *gorm.DB) GetPendingOrdersQueryHandler {
	return GetPendingOrdersQueryHandler{db: db}
}

// Handle returns Confirmed and Processing orders ordered by sale date, then id.
func (h GetPendingOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetPendingOrdersQuery,
) ([]GetPendingOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetPendingOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			party,
			sale_date,
			status,
			shipment_state,
			invoice_state
		FROM orders
		WHERE status IN (?, ?)
		ORDER BY sale_date, id
		LIMIT ?
	`, int(order.Confirmed), int(order.Processing), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetPendingOrdersQueryResponse
		var id uuid.UUID
		var status, shipmentState, invoiceState int

		err = rows.Scan(
			&id,
			&resp.Party,
			&resp.SaleDate,
			&status,
			&shipmentState,
			&invoiceState,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.Status = order.Status(status)
		resp.ShipmentState = order.ShipmentState(shipmentState)
		resp.InvoiceState = order.InvoiceState(invoiceState)

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
