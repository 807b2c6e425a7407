package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderLinesAreRequired = errors.New("at least one order line is required")
)

// OrderLineInput describes one line of a new order.
type OrderLineInput struct {
	LineID        kernel.UUID
	ProductID     *kernel.UUID
	ProductName   string
	IsGoods       bool
	Description   string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	TaxAmount     decimal.Decimal
	DeliveryMode  kernel.DeliveryMode
	RequestedDate *time.Time
}

// CreateOrderCommand represents a request to register a Draft sales order with its lines.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(orderID, "ACME", "EUR", time.Now(), "WH", "",
//	    order.InvoiceOnShipment, order.ShipmentOnOrder, lines)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID           kernel.UUID
	party             string
	currency          string
	saleDate          time.Time
	warehouse         string
	shipFromWarehouse string
	invoiceMethod     order.InvoiceMethod
	shipmentMethod    order.ShipmentMethod
	lines             []OrderLineInput

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request shape. Domain rules (currency code,
// delivery modes of goods) are enforced when the order is built.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	party string,
	currency string,
	saleDate time.Time,
	warehouse string,
	shipFromWarehouse string,
	invoiceMethod order.InvoiceMethod,
	shipmentMethod order.ShipmentMethod,
	lines []OrderLineInput,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		party:             strings.TrimSpace(party),
		currency:          currency,
		saleDate:          saleDate,
		warehouse:         warehouse,
		shipFromWarehouse: shipFromWarehouse,
		invoiceMethod:     invoiceMethod,
		shipmentMethod:    shipmentMethod,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setSaleDate(saleDate),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID                 { return c.orderID }
func (c CreateOrderCommand) Party() string                        { return c.party }
func (c CreateOrderCommand) Currency() string                     { return c.currency }
func (c CreateOrderCommand) SaleDate() time.Time                  { return c.saleDate }
func (c CreateOrderCommand) Warehouse() string                    { return c.warehouse }
func (c CreateOrderCommand) ShipFromWarehouse() string            { return c.shipFromWarehouse }
func (c CreateOrderCommand) InvoiceMethod() order.InvoiceMethod   { return c.invoiceMethod }
func (c CreateOrderCommand) ShipmentMethod() order.ShipmentMethod { return c.shipmentMethod }

// Lines returns a copy of the line inputs.
func (c CreateOrderCommand) Lines() []OrderLineInput {
	return append([]OrderLineInput(nil), c.lines...)
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setSaleDate(saleDate time.Time) error {
	if saleDate.IsZero() {
		return errs.NewValueIsRequiredError("sale date")
	}
	c.saleDate = saleDate
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLineInput) error {
	if len(lines) == 0 {
		return ErrOrderLinesAreRequired
	}
	for i, l := range lines {
		if err := l.LineID.Validate(); err != nil {
			return fmt.Errorf("line %d: %w", i, err)
		}
	}
	c.lines = append([]OrderLineInput(nil), lines...)
	return nil
}
