package invoice

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Line bills a quantity of one order line, optionally limited to the moves of one
// shipment. The pair (origin line, origin shipment) identifies the billed material.
type Line struct {
	originLineID     kernel.UUID
	originShipmentID *kernel.UUID
	account          string
	description      string
	quantity         decimal.Decimal
	unitPrice        decimal.Decimal
	isRoundOff       bool
}

// NewLine creates an invoice line. The account is mandatory for round-off lines.
func NewLine(
	originLineID kernel.UUID,
	originShipmentID *kernel.UUID,
	account string,
	description string,
	quantity decimal.Decimal,
	unitPrice decimal.Decimal,
	isRoundOff bool,
) (Line, error) {
	l := Line{
		originLineID: originLineID,
		account:      strings.TrimSpace(account),
		description:  strings.TrimSpace(description),
		quantity:     quantity,
		unitPrice:    unitPrice,
		isRoundOff:   isRoundOff,
	}

	var shipmentErr, accountErr, qtyErr error
	if originShipmentID != nil {
		shipmentErr = originShipmentID.Validate()
		id := *originShipmentID
		l.originShipmentID = &id
	}
	if isRoundOff && l.account == "" {
		accountErr = errs.NewValueIsRequiredError("account")
	}
	if quantity.IsZero() {
		qtyErr = errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%s is zero", quantity))
	}

	if err := errors.Join(originLineID.Validate(), shipmentErr, accountErr, qtyErr); err != nil {
		return Line{}, err
	}
	return l, nil
}

func (l Line) OriginLineID() kernel.UUID { return l.originLineID }

// OriginShipmentID returns the shipment whose moves the line bills, nil for lines
// billed on order.
func (l Line) OriginShipmentID() *kernel.UUID {
	if l.originShipmentID == nil {
		return nil
	}
	id := *l.originShipmentID
	return &id
}

func (l Line) Account() string            { return l.account }
func (l Line) Description() string        { return l.description }
func (l Line) Quantity() decimal.Decimal  { return l.quantity }
func (l Line) UnitPrice() decimal.Decimal { return l.unitPrice }
func (l Line) IsRoundOff() bool           { return l.isRoundOff }

// Amount returns quantity × unit price rounded to the currency precision.
func (l Line) Amount() decimal.Decimal {
	return kernel.LineAmount(l.quantity, l.unitPrice)
}

// MaterialKey identifies what a line bills.
type MaterialKey struct {
	LineID     kernel.UUID
	ShipmentID kernel.UUID
}

// Key returns the material key of the line. Lines billed on order have a zero
// ShipmentID.
func (l Line) Key() MaterialKey {
	key := MaterialKey{LineID: l.originLineID}
	if l.originShipmentID != nil {
		key.ShipmentID = *l.originShipmentID
	}
	return key
}
