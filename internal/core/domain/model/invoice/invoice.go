package invoice

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via NewInvoice constructor")

// Invoice is a sale invoice or credit note derived from an order.
type Invoice struct {
	id       kernel.UUID
	orderID  kernel.UUID
	typ      Type
	status   Status
	trigger  Trigger
	currency string
	lines    []Line

	isConstructed bool
}

// NewInvoice creates a Draft invoice. Empty invoices are refused.
func NewInvoice(id, orderID kernel.UUID, typ Type, trigger Trigger, currency string, lines []Line) (*Invoice, error) {
	return RestoreInvoice(id, orderID, typ, Draft, trigger, currency, lines)
}

func RestoreInvoice(
	id, orderID kernel.UUID,
	typ Type,
	status Status,
	trigger Trigger,
	currency string,
	lines []Line,
) (*Invoice, error) {
	inv := &Invoice{
		id:            id,
		orderID:       orderID,
		typ:           typ,
		status:        status,
		trigger:       trigger,
		currency:      strings.ToUpper(strings.TrimSpace(currency)),
		lines:         append([]Line(nil), lines...),
		isConstructed: true,
	}

	var currencyErr, linesErr error
	if inv.currency == "" {
		currencyErr = errs.NewValueIsRequiredError("currency")
	}
	if len(lines) == 0 {
		linesErr = errs.NewValueIsRequiredError("lines")
	}

	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		typ.Validate(),
		status.Validate(),
		trigger.validate(),
		currencyErr,
		linesErr,
	); err != nil {
		return nil, err
	}
	return inv, nil
}

func (i *Invoice) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrInvoiceIsNotConstructed
	}
	return nil
}

func (i *Invoice) ID() kernel.UUID      { return i.id }
func (i *Invoice) OrderID() kernel.UUID { return i.orderID }
func (i *Invoice) Type() Type           { return i.typ }
func (i *Invoice) Status() Status       { return i.status }
func (i *Invoice) Trigger() Trigger     { return i.trigger }
func (i *Invoice) Currency() string     { return i.currency }
func (i *Invoice) IsActive() bool       { return i.status.IsActive() }

func (i *Invoice) Lines() []Line {
	return append([]Line(nil), i.lines...)
}

// TotalAmount is the sum of the line amounts.
func (i *Invoice) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, l := range i.lines {
		total = total.Add(l.Amount())
	}
	return total
}

// SignedQuantity returns the quantity a line bills in order terms: credit note
// quantities are stored positive and count negatively.
func (i *Invoice) SignedQuantity(l Line) decimal.Decimal {
	if i.typ == CreditNote {
		return l.Quantity().Neg()
	}
	return l.Quantity()
}

// Post finalizes a Draft invoice. An invoice with nothing to pay is settled at once.
func (i *Invoice) Post() error {
	if i.status != Draft {
		return i.status.transitionError("post")
	}
	i.status = Posted
	if i.TotalAmount().IsZero() {
		i.status = Paid
	}
	return nil
}

// Pay records the payment of a Posted invoice.
func (i *Invoice) Pay() error {
	if i.status != Posted {
		return i.status.transitionError("pay")
	}
	i.status = Paid
	return nil
}

// Cancel voids an invoice that is not paid yet.
func (i *Invoice) Cancel() error {
	if i.status != Draft && i.status != Posted {
		return i.status.transitionError("cancel")
	}
	i.status = Cancelled
	return nil
}
