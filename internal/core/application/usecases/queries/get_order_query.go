package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery reads one order with its lines, shipments and invoices.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// GetOrderQueryResponse is the read model of an order. Amounts are computed from
// the stored lines with the same rounding as the domain.
type GetOrderQueryResponse struct {
	ID                kernel.UUID
	Party             string
	Currency          string
	SaleDate          time.Time
	Warehouse         string
	ShipFromWarehouse string
	Status            order.Status
	InvoiceMethod     order.InvoiceMethod
	ShipmentMethod    order.ShipmentMethod
	ShipmentState     order.ShipmentState
	InvoiceState      order.InvoiceState
	UntaxedAmount     decimal.Decimal
	TaxAmount         decimal.Decimal
	TotalAmount       decimal.Decimal
	Lines             []OrderLineView
	Shipments         []ShipmentView
	Invoices          []InvoiceView
}

type OrderLineView struct {
	ID            kernel.UUID
	ProductID     *kernel.UUID
	Description   string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	TaxAmount     decimal.Decimal
	Amount        decimal.Decimal
	DeliveryMode  kernel.DeliveryMode
	RequestedDate *time.Time
	IsRoundOff    bool
}

type ShipmentView struct {
	ID           kernel.UUID
	Direction    shipment.Direction
	DeliveryMode kernel.DeliveryMode
	Warehouse    string
	PlannedDate  time.Time
	Status       shipment.Status
}

type InvoiceView struct {
	ID          kernel.UUID
	Type        invoice.Type
	Status      invoice.Status
	TotalAmount decimal.Decimal
}
