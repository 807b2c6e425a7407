package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// RoundOffDescription is the description given to generated round-off lines.
const RoundOffDescription = "Round-off"

var (
	// ErrLineIsNotConstructed is returned when a Line was not created through NewLine,
	// NewRoundOffLine or RestoreLine.
	ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")
)

// Line is a single order line. The quantity is signed: a negative quantity turns the
// line into a return (for goods) or a credit (for services).
//
// Invariants:
//   - Goods lines carry a delivery mode, other lines never do
//   - A line without product needs a description
//   - Round-off lines have no product and quantity -1
type Line struct {
	id            kernel.UUID
	product       *Product
	description   string
	quantity      decimal.Decimal
	unitPrice     decimal.Decimal
	taxAmount     decimal.Decimal
	deliveryMode  kernel.DeliveryMode
	requestedDate *time.Time
	isRoundOff    bool

	isConstructed bool
}

// NewLine creates a regular order line.
//
// Parameters:
//   - product: catalog reference, nil for free-text lines
//   - mode: PickUp or Ship for goods, kernel.NoDeliveryMode otherwise
//   - requestedDate: optional shipping date; the order's sale date is used when nil
//
// Example:
//
//	p, _ := order.NewProduct(productID, "Desk lamp", true)
//	line, err := order.NewLine(kernel.NewUUID(), &p, "", decimal.NewFromInt(2),
//	    decimal.RequireFromString("19.90"), decimal.Zero, kernel.PickUp, nil)
func NewLine(
	id kernel.UUID,
	product *Product,
	description string,
	quantity decimal.Decimal,
	unitPrice decimal.Decimal,
	taxAmount decimal.Decimal,
	mode kernel.DeliveryMode,
	requestedDate *time.Time,
) (*Line, error) {
	return RestoreLine(id, product, description, quantity, unitPrice, taxAmount, mode, requestedDate, false)
}

// NewRoundOffLine creates the synthetic line absorbing the fractional remainder of
// an order total: quantity -1 and unit price diff, so its amount is -diff.
func NewRoundOffLine(id kernel.UUID, diff decimal.Decimal) (*Line, error) {
	return RestoreLine(id, nil, RoundOffDescription, decimal.NewFromInt(-1), diff, decimal.Zero,
		kernel.NoDeliveryMode, nil, true)
}

// RestoreLine rebuilds a persisted line.
func RestoreLine(
	id kernel.UUID,
	product *Product,
	description string,
	quantity decimal.Decimal,
	unitPrice decimal.Decimal,
	taxAmount decimal.Decimal,
	mode kernel.DeliveryMode,
	requestedDate *time.Time,
	isRoundOff bool,
) (*Line, error) {
	line := &Line{
		quantity:      quantity,
		unitPrice:     unitPrice,
		taxAmount:     taxAmount,
		requestedDate: requestedDate,
		isRoundOff:    isRoundOff,
		isConstructed: true,
	}

	if err := errors.Join(
		line.setID(id),
		line.setProduct(product, isRoundOff),
		line.setDescription(description),
		line.setDeliveryMode(mode),
		line.validateRoundOff(),
	); err != nil {
		return nil, err
	}

	return line, nil
}

// Validate ensures the Line was properly constructed.
func (l *Line) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLineIsNotConstructed
	}
	return nil
}

func (l *Line) ID() kernel.UUID {
	return l.id
}

// Product returns the catalog reference or nil for free-text and round-off lines.
func (l *Line) Product() *Product {
	if l.product == nil {
		return nil
	}
	p := *l.product
	return &p
}

// Description returns the line description, falling back to the product name.
func (l *Line) Description() string {
	if l.description == "" && l.product != nil {
		return l.product.Name()
	}
	return l.description
}

func (l *Line) Quantity() decimal.Decimal {
	return l.quantity
}

func (l *Line) UnitPrice() decimal.Decimal {
	return l.unitPrice
}

func (l *Line) TaxAmount() decimal.Decimal {
	return l.taxAmount
}

// Amount returns quantity × unit price rounded to the currency precision.
func (l *Line) Amount() decimal.Decimal {
	return kernel.LineAmount(l.quantity, l.unitPrice)
}

func (l *Line) DeliveryMode() kernel.DeliveryMode {
	return l.deliveryMode
}

// RequestedDate returns the shipping date asked for this line, if any.
func (l *Line) RequestedDate() *time.Time {
	return l.requestedDate
}

func (l *Line) IsRoundOff() bool {
	return l.isRoundOff
}

// IsGoods reports whether the line moves tangible items and therefore needs shipments.
func (l *Line) IsGoods() bool {
	return l.product != nil && l.product.IsGoods()
}

func (l *Line) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Line) setProduct(product *Product, isRoundOff bool) error {
	if product == nil {
		return nil
	}
	if isRoundOff {
		return errs.NewValueIsInvalidErrorWithCause("product is invalid", errors.New("round-off lines have no product"))
	}
	if err := product.Validate(); err != nil {
		return err
	}
	p := *product
	l.product = &p
	return nil
}

func (l *Line) setDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" && l.product == nil {
		return errs.NewValueIsRequiredError("description")
	}
	l.description = description
	return nil
}

func (l *Line) setDeliveryMode(mode kernel.DeliveryMode) error {
	if l.IsGoods() {
		if err := mode.Validate(); err != nil {
			return err
		}
	} else if mode.IsSet() {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery mode is invalid",
			fmt.Errorf("%s is not allowed on a line without goods", mode),
		)
	}
	l.deliveryMode = mode
	return nil
}

func (l *Line) validateRoundOff() error {
	if l.isRoundOff && !l.quantity.Equal(decimal.NewFromInt(-1)) {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("round-off line quantity must be -1, got %s", l.quantity),
		)
	}
	return nil
}
