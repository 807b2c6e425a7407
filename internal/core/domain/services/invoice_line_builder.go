package services

import (
	"fmt"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// RoundDownAccountSetting is the configuration key of the account used by round-off
// invoice lines.
const RoundDownAccountSetting = "round_down_account"

// InvoiceRederivePolicy decides whether material billed by a cancelled invoice may be
// billed again.
type InvoiceRederivePolicy int

const (
	// RederiveOnEvent bills each triggering event once: cancelled invoices still count
	// as representing their material.
	RederiveOnEvent InvoiceRederivePolicy = iota + 1
	// RederiveOnAmount bills whatever amount no active invoice represents, so a later
	// pass re-derives the material of a cancelled invoice.
	RederiveOnAmount
)

// ParseInvoiceRederivePolicy converts "event" or "amount" into a policy.
func ParseInvoiceRederivePolicy(s string) (InvoiceRederivePolicy, error) {
	switch s {
	case "event", "":
		return RederiveOnEvent, nil
	case "amount":
		return RederiveOnAmount, nil
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause("rederive policy is invalid", fmt.Errorf("%q is not a valid policy", s))
	}
}

func (p InvoiceRederivePolicy) String() string {
	if p == RederiveOnAmount {
		return "amount"
	}
	return "event"
}

// Material is a quantity of an order line that no invoice bills yet.
type Material struct {
	Key      invoice.MaterialKey
	Line     *order.Line
	Quantity decimal.Decimal
}

// ShipmentID returns the shipment the material was delivered by, nil for material
// billed on order.
func (m Material) ShipmentID() *kernel.UUID {
	if m.Key.ShipmentID.Validate() != nil {
		return nil
	}
	id := m.Key.ShipmentID
	return &id
}

// InvoiceLineBuilder computes what is left to invoice on an order and turns it into
// invoice lines. Material is identified by (order line, shipment) so the same
// quantity is never billed twice, whatever the number of process passes.
type InvoiceLineBuilder struct {
	policy InvoiceRederivePolicy
}

func NewInvoiceLineBuilder(policy InvoiceRederivePolicy) InvoiceLineBuilder {
	if policy == 0 {
		policy = RederiveOnEvent
	}
	return InvoiceLineBuilder{policy: policy}
}

func (b InvoiceLineBuilder) Policy() InvoiceRederivePolicy {
	return b.policy
}

// PendingMaterial returns the invoiceable quantities not represented by existing
// invoices, in line order.
//
// Invoiceable quantities depend on the invoice method:
//   - Manual: nothing
//   - Order: the full quantity of every line
//   - Shipment: goods by the moves of Done shipments, other lines in full. The
//     round-off line is held back while it would be billed alone and goods are
//     still undelivered.
func (b InvoiceLineBuilder) PendingMaterial(
	o *order.Order,
	shipments []*shipment.Shipment,
	invoices []*invoice.Invoice,
) []Material {
	if o.InvoiceMethod() == order.InvoiceManual {
		return nil
	}

	represented := make(map[invoice.MaterialKey]decimal.Decimal)
	for _, inv := range invoices {
		if !inv.IsActive() && b.policy == RederiveOnAmount {
			continue
		}
		for _, l := range inv.Lines() {
			represented[l.Key()] = represented[l.Key()].Add(inv.SignedQuantity(l))
		}
	}

	var pending []Material
	add := func(line *order.Line, key invoice.MaterialKey, invoiceable decimal.Decimal) {
		q := invoiceable.Sub(represented[key])
		if !q.IsZero() {
			pending = append(pending, Material{Key: key, Line: line, Quantity: q})
		}
	}

	undelivered := false
	for _, line := range o.Lines() {
		if o.InvoiceMethod() == order.InvoiceOnShipment && line.IsGoods() {
			delivered := decimal.Zero
			for _, s := range shipments {
				if !s.IsDone() {
					continue
				}
				if q, ok := s.QuantityByLine()[line.ID()]; ok {
					delivered = delivered.Add(q)
					add(line, invoice.MaterialKey{LineID: line.ID(), ShipmentID: s.ID()}, q)
				}
			}
			if !delivered.Equal(line.Quantity()) {
				undelivered = true
			}
			continue
		}
		add(line, invoice.MaterialKey{LineID: line.ID()}, line.Quantity())
	}

	// the round-off line adjusts the order total, so it waits for goods to bill
	if undelivered && onlyRoundOff(pending) {
		return nil
	}
	return pending
}

func onlyRoundOff(material []Material) bool {
	for _, m := range material {
		if !m.Line.IsRoundOff() {
			return false
		}
	}
	return len(material) > 0
}

// NetAmount is the signed amount of the material.
func NetAmount(material []Material) decimal.Decimal {
	total := decimal.Zero
	for _, m := range material {
		total = total.Add(kernel.LineAmount(m.Quantity, m.Line.UnitPrice()))
	}
	return total
}

// InvoiceTypeFor returns Sale for a non-negative net amount and CreditNote otherwise.
func InvoiceTypeFor(material []Material) invoice.Type {
	if NetAmount(material).IsNegative() {
		return invoice.CreditNote
	}
	return invoice.Sale
}

// NeedsRoundDownAccount reports whether the material contains a round-off line.
func NeedsRoundDownAccount(material []Material) bool {
	for _, m := range material {
		if m.Line.IsRoundOff() {
			return true
		}
	}
	return false
}

// BuildLines converts material into invoice lines of the given type. Credit note
// quantities are negated so the credit note total is positive.
//
// A round-off line without roundDownAccount fails with *errs.ConfigurationError.
func (b InvoiceLineBuilder) BuildLines(
	material []Material,
	typ invoice.Type,
	roundDownAccount string,
	scope string,
) ([]invoice.Line, error) {
	lines := make([]invoice.Line, 0, len(material))
	for _, m := range material {
		account := ""
		if m.Line.IsRoundOff() {
			if roundDownAccount == "" {
				return nil, errs.NewConfigurationError(
					RoundDownAccountSetting,
					scope,
					"Configure a round down account before invoicing orders with a round-off line",
				)
			}
			account = roundDownAccount
		}

		quantity := m.Quantity
		if typ == invoice.CreditNote {
			quantity = quantity.Neg()
		}

		l, err := invoice.NewLine(m.Line.ID(), m.ShipmentID(), account, m.Line.Description(),
			quantity, m.Line.UnitPrice(), m.Line.IsRoundOff())
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, nil
}
