package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler builds the order read model with raw SQL over the order,
// shipment and invoice tables.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	orderID := query.OrderID().Bytes()

	resp, err := h.header(db, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderQueryResponse{}, err
	}

	if resp.Lines, err = h.lines(db, orderID); err != nil {
		return GetOrderQueryResponse{}, err
	}
	for _, l := range resp.Lines {
		resp.UntaxedAmount = resp.UntaxedAmount.Add(l.Amount)
		resp.TaxAmount = resp.TaxAmount.Add(l.TaxAmount)
	}
	resp.TotalAmount = resp.UntaxedAmount.Add(resp.TaxAmount)

	if resp.Shipments, err = h.shipments(db, orderID); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Invoices, err = h.invoices(db, orderID); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) header(db *gorm.DB, orderID uuid.UUID) (GetOrderQueryResponse, error) {
	var resp GetOrderQueryResponse
	var id uuid.UUID
	var status, invoiceMethod, shipmentMethod, shipmentState, invoiceState int

	row := db.Raw(`
		SELECT
			id,
			party,
			currency,
			sale_date,
			warehouse,
			ship_from_warehouse,
			status,
			invoice_method,
			shipment_method,
			shipment_state,
			invoice_state
		FROM orders
		WHERE id = ?
	`, orderID).Row()
	err := row.Scan(
		&id,
		&resp.Party,
		&resp.Currency,
		&resp.SaleDate,
		&resp.Warehouse,
		&resp.ShipFromWarehouse,
		&status,
		&invoiceMethod,
		&shipmentMethod,
		&shipmentState,
		&invoiceState,
	)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Status = order.Status(status)
	resp.InvoiceMethod = order.InvoiceMethod(invoiceMethod)
	resp.ShipmentMethod = order.ShipmentMethod(shipmentMethod)
	resp.ShipmentState = order.ShipmentState(shipmentState)
	resp.InvoiceState = order.InvoiceState(invoiceState)
	return resp, nil
}

func (h GetOrderQueryHandler) lines(db *gorm.DB, orderID uuid.UUID) ([]OrderLineView, error) {
	rows, err := db.Raw(`
		SELECT
			id,
			product_id,
			COALESCE(NULLIF(description, ''), product_name),
			quantity,
			unit_price,
			tax_amount,
			delivery_mode,
			requested_date,
			is_round_off
		FROM order_lines
		WHERE order_id = ?
		ORDER BY position
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]OrderLineView, 0)
	for rows.Next() {
		var line OrderLineView
		var id uuid.UUID
		var productID uuid.NullUUID
		var mode int
		var requested sql.NullTime

		err = rows.Scan(
			&id,
			&productID,
			&line.Description,
			&line.Quantity,
			&line.UnitPrice,
			&line.TaxAmount,
			&mode,
			&requested,
			&line.IsRoundOff,
		)
		if err != nil {
			return nil, err
		}

		if line.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if productID.Valid {
			pid, pidErr := kernel.UUIDFromBytes(productID.UUID[:])
			if pidErr != nil {
				return nil, pidErr
			}
			line.ProductID = &pid
		}
		if requested.Valid {
			date := requested.Time
			line.RequestedDate = &date
		}
		line.DeliveryMode = kernel.DeliveryMode(mode)
		line.Amount = kernel.LineAmount(line.Quantity, line.UnitPrice)

		lines = append(lines, line)
	}

	return lines, rows.Err()
}

func (h GetOrderQueryHandler) shipments(db *gorm.DB, orderID uuid.UUID) ([]ShipmentView, error) {
	rows, err := db.Raw(`
		SELECT
			id,
			direction,
			delivery_mode,
			warehouse,
			planned_date,
			status
		FROM shipments
		WHERE order_id = ?
		ORDER BY created_at, id
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shipments := make([]ShipmentView, 0)
	for rows.Next() {
		var view ShipmentView
		var id uuid.UUID
		var direction, mode, status int

		if err = rows.Scan(&id, &direction, &mode, &view.Warehouse, &view.PlannedDate, &status); err != nil {
			return nil, err
		}
		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		view.Direction = shipment.Direction(direction)
		view.DeliveryMode = kernel.DeliveryMode(mode)
		view.Status = shipment.Status(status)

		shipments = append(shipments, view)
	}

	return shipments, rows.Err()
}

func (h GetOrderQueryHandler) invoices(db *gorm.DB, orderID uuid.UUID) ([]InvoiceView, error) {
	rows, err := db.Raw(`
		SELECT
			id,
			type,
			status,
			total_amount
		FROM invoices
		WHERE order_id = ?
		ORDER BY created_at, id
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := make([]InvoiceView, 0)
	for rows.Next() {
		var view InvoiceView
		var id uuid.UUID
		var typ, status int

		if err = rows.Scan(&id, &typ, &status, &view.TotalAmount); err != nil {
			return nil, err
		}
		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		view.Type = invoice.Type(typ)
		view.Status = invoice.Status(status)

		invoices = append(invoices, view)
	}

	return invoices, rows.Err()
}
