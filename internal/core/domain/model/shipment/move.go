package shipment

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrMoveIsNotConstructed is returned for a Move not built with NewMove or RestoreMove.
var ErrMoveIsNotConstructed = errors.New("Move must be created via NewMove constructor")

// Move is the stock movement of one order line inside a shipment.
// The quantity is always positive; the shipment direction carries the sign.
type Move struct {
	id           kernel.UUID
	originLineID kernel.UUID
	productID    kernel.UUID
	productName  string
	quantity     decimal.Decimal
	status       MoveStatus

	isConstructed bool
}

// NewMove creates a Draft move.
func NewMove(id, originLineID, productID kernel.UUID, productName string, quantity decimal.Decimal) (*Move, error) {
	return RestoreMove(id, originLineID, productID, productName, quantity, MoveDraft)
}

// RestoreMove rebuilds a persisted move.
func RestoreMove(
	id, originLineID, productID kernel.UUID,
	productName string,
	quantity decimal.Decimal,
	status MoveStatus,
) (*Move, error) {
	m := &Move{
		id:            id,
		originLineID:  originLineID,
		productID:     productID,
		productName:   strings.TrimSpace(productName),
		quantity:      quantity,
		status:        status,
		isConstructed: true,
	}

	var nameErr, qtyErr, statusErr error
	if m.productName == "" {
		nameErr = errs.NewValueIsRequiredError("product name")
	}
	if !quantity.IsPositive() {
		qtyErr = errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%s is not greater than 0", quantity))
	}
	if _, ok := moveStatusNames[status]; !ok {
		statusErr = errs.NewValueIsInvalidErrorWithCause("move status is invalid", fmt.Errorf("%d is not a valid move status", status))
	}

	if err := errors.Join(
		id.Validate(),
		originLineID.Validate(),
		productID.Validate(),
		nameErr,
		qtyErr,
		statusErr,
	); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Move) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMoveIsNotConstructed
	}
	return nil
}

func (m *Move) ID() kernel.UUID           { return m.id }
func (m *Move) OriginLineID() kernel.UUID { return m.originLineID }
func (m *Move) ProductID() kernel.UUID    { return m.productID }
func (m *Move) ProductName() string       { return m.productName }
func (m *Move) Quantity() decimal.Decimal { return m.quantity }
func (m *Move) Status() MoveStatus        { return m.status }
