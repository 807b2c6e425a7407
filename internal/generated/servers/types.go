package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Decimal is a decimal number encoded as a string to keep its exact value.
type Decimal = string

// OrderIDs defines model for OrderIDs.
type OrderIDs struct {
	OrderIds []openapi_types.UUID `json:"orderIds"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	Currency          string                 `json:"currency"`
	InvoiceMethod     NewOrderInvoiceMethod  `json:"invoiceMethod"`
	Lines             []NewOrderLine         `json:"lines"`
	Party             string                 `json:"party"`
	SaleDate          openapi_types.Date     `json:"saleDate"`
	ShipFromWarehouse *string                `json:"shipFromWarehouse,omitempty"`
	ShipmentMethod    NewOrderShipmentMethod `json:"shipmentMethod"`
	Warehouse         string                 `json:"warehouse"`
}

// NewOrderInvoiceMethod defines model for NewOrder.InvoiceMethod.
type NewOrderInvoiceMethod string

// Defines values for NewOrderInvoiceMethod.
const (
	NewOrderInvoiceMethodManual   NewOrderInvoiceMethod = "manual"
	NewOrderInvoiceMethodOrder    NewOrderInvoiceMethod = "order"
	NewOrderInvoiceMethodShipment NewOrderInvoiceMethod = "shipment"
)

// NewOrderShipmentMethod defines model for NewOrder.ShipmentMethod.
type NewOrderShipmentMethod string

// Defines values for NewOrderShipmentMethod.
const (
	NewOrderShipmentMethodManual NewOrderShipmentMethod = "manual"
	NewOrderShipmentMethodOrder  NewOrderShipmentMethod = "order"
)

// NewOrderLine defines model for NewOrderLine.
type NewOrderLine struct {
	DeliveryMode  *NewOrderLineDeliveryMode `json:"deliveryMode,omitempty"`
	Description   *string                   `json:"description,omitempty"`
	IsGoods       *bool                     `json:"isGoods,omitempty"`
	ProductId     *openapi_types.UUID       `json:"productId,omitempty"`
	ProductName   *string                   `json:"productName,omitempty"`
	Quantity      Decimal                   `json:"quantity"`
	RequestedDate *openapi_types.Date       `json:"requestedDate,omitempty"`
	TaxAmount     *Decimal                  `json:"taxAmount,omitempty"`
	UnitPrice     Decimal                   `json:"unitPrice"`
}

// NewOrderLineDeliveryMode defines model for NewOrderLine.DeliveryMode.
type NewOrderLineDeliveryMode string

// Defines values for NewOrderLineDeliveryMode.
const (
	PickUp NewOrderLineDeliveryMode = "pick_up"
	Ship   NewOrderLineDeliveryMode = "ship"
)

// CreatedOrder defines model for CreatedOrder.
type CreatedOrder struct {
	Id openapi_types.UUID `json:"id"`
}

// PendingOrder defines model for PendingOrder.
type PendingOrder struct {
	Id            openapi_types.UUID `json:"id"`
	InvoiceState  string             `json:"invoiceState"`
	Party         string             `json:"party"`
	SaleDate      openapi_types.Date `json:"saleDate"`
	ShipmentState string             `json:"shipmentState"`
	Status        string             `json:"status"`
}

// RecentOrder defines model for RecentOrder.
type RecentOrder struct {
	Id        openapi_types.UUID `json:"id"`
	Party     string             `json:"party"`
	SaleDate  openapi_types.Date `json:"saleDate"`
	Status    string             `json:"status"`
	TouchedAt time.Time          `json:"touchedAt"`
}

// Order defines model for Order.
type Order struct {
	Currency          string             `json:"currency"`
	Id                openapi_types.UUID `json:"id"`
	InvoiceMethod     string             `json:"invoiceMethod"`
	InvoiceState      string             `json:"invoiceState"`
	Invoices          []Invoice          `json:"invoices"`
	Lines             []OrderLine        `json:"lines"`
	Party             string             `json:"party"`
	SaleDate          openapi_types.Date `json:"saleDate"`
	ShipFromWarehouse *string            `json:"shipFromWarehouse,omitempty"`
	ShipmentMethod    string             `json:"shipmentMethod"`
	ShipmentState     string             `json:"shipmentState"`
	Shipments         []Shipment         `json:"shipments"`
	Status            string             `json:"status"`
	TaxAmount         Decimal            `json:"taxAmount"`
	TotalAmount       Decimal            `json:"totalAmount"`
	UntaxedAmount     Decimal            `json:"untaxedAmount"`
	Warehouse         string             `json:"warehouse"`
}

// OrderLine defines model for OrderLine.
type OrderLine struct {
	Amount        Decimal             `json:"amount"`
	DeliveryMode  *string             `json:"deliveryMode,omitempty"`
	Description   string              `json:"description"`
	Id            openapi_types.UUID  `json:"id"`
	IsRoundOff    bool                `json:"isRoundOff"`
	ProductId     *openapi_types.UUID `json:"productId,omitempty"`
	Quantity      Decimal             `json:"quantity"`
	RequestedDate *openapi_types.Date `json:"requestedDate,omitempty"`
	TaxAmount     Decimal             `json:"taxAmount"`
	UnitPrice     Decimal             `json:"unitPrice"`
}

// Shipment defines model for Shipment.
type Shipment struct {
	DeliveryMode string             `json:"deliveryMode"`
	Direction    string             `json:"direction"`
	Id           openapi_types.UUID `json:"id"`
	PlannedDate  openapi_types.Date `json:"plannedDate"`
	Status       string             `json:"status"`
	Warehouse    string             `json:"warehouse"`
}

// Invoice defines model for Invoice.
type Invoice struct {
	Id          openapi_types.UUID `json:"id"`
	Status      string             `json:"status"`
	TotalAmount Decimal            `json:"totalAmount"`
	Type        string             `json:"type"`
}

// ShipmentGroup defines model for ShipmentGroup.
type ShipmentGroup struct {
	DeliveryMode string              `json:"deliveryMode"`
	Direction    string              `json:"direction"`
	Lines        []ShipmentGroupLine `json:"lines"`
	PlannedDate  openapi_types.Date  `json:"plannedDate"`
	Warehouse    string              `json:"warehouse"`
}

// ShipmentGroupLine defines model for ShipmentGroupLine.
type ShipmentGroupLine struct {
	Description string             `json:"description"`
	LineId      openapi_types.UUID `json:"lineId"`
	Quantity    Decimal            `json:"quantity"`
}

// OrderId defines model for OrderId.
type OrderId = openapi_types.UUID

// ShipmentId defines model for ShipmentId.
type ShipmentId = openapi_types.UUID

// InvoiceId defines model for InvoiceId.
type InvoiceId = openapi_types.UUID

// GetPendingOrdersParams defines parameters for GetPendingOrders.
type GetPendingOrdersParams struct {
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// GetRecentOrdersParams defines parameters for GetRecentOrders.
type GetRecentOrdersParams struct {
	Days  *int `form:"days,omitempty" json:"days,omitempty"`
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = NewOrder

// ReconcileRoundOffJSONRequestBody defines body for ReconcileRoundOff for application/json ContentType.
type ReconcileRoundOffJSONRequestBody = OrderIDs
