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

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrLineNotFound is returned when a line identifier does not belong to the order.
	ErrLineNotFound = errors.New("line not found")
)

// Order is the sales order aggregate root. It owns an ordered collection of lines and
// records the rollup states of the shipments and invoices derived from it.
//
// Order follows these invariants:
//   - Must have a valid unique identifier, a party, a currency and a warehouse
//   - At most one line is a round-off line
//   - Lines are only edited while Draft or Quotation
//   - Status transitions follow the Status state machine
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	id       kernel.UUID
	party    string
	currency string
	saleDate time.Time

	// warehouse ships pick-up lines, shipFromWarehouse ships Ship lines
	warehouse         string
	shipFromWarehouse string

	status         Status
	invoiceMethod  InvoiceMethod
	shipmentMethod ShipmentMethod
	shipmentState  ShipmentState
	invoiceState   InvoiceState

	lines []*Line

	isConstructed bool
}

// NewOrder creates a Draft order without lines.
//
// Parameters:
//   - party: customer reference (required)
//   - currency: ISO currency code of all amounts (required)
//   - saleDate: date used as planned shipping date of lines without a requested date
//   - warehouse: warehouse serving the order (required)
//   - invoiceMethod, shipmentMethod: processing policies
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), "ACME", "EUR", time.Now(), "WH",
//	    order.InvoiceOnShipment, order.ShipmentOnOrder)
//	if err != nil {
//	    return fmt.Errorf("invalid order: %w", err)
//	}
func NewOrder(
	id kernel.UUID,
	party string,
	currency string,
	saleDate time.Time,
	warehouse string,
	invoiceMethod InvoiceMethod,
	shipmentMethod ShipmentMethod,
) (*Order, error) {
	return RestoreOrder(id, party, currency, saleDate, warehouse, "", Draft,
		invoiceMethod, shipmentMethod, ShipmentStateNone, InvoiceStateNone, nil)
}

// RestoreOrder rebuilds a persisted order, lines included. It enforces the same
// invariants as NewOrder plus the single round-off line rule.
func RestoreOrder(
	id kernel.UUID,
	party string,
	currency string,
	saleDate time.Time,
	warehouse string,
	shipFromWarehouse string,
	status Status,
	invoiceMethod InvoiceMethod,
	shipmentMethod ShipmentMethod,
	shipmentState ShipmentState,
	invoiceState InvoiceState,
	lines []*Line,
) (*Order, error) {
	o := &Order{
		saleDate:          saleDate,
		shipFromWarehouse: strings.TrimSpace(shipFromWarehouse),
		shipmentState:     shipmentState,
		invoiceState:      invoiceState,
		isConstructed:     true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setParty(party),
		o.setCurrency(currency),
		o.setWarehouse(warehouse),
		o.setStatus(status),
		o.setInvoiceMethod(invoiceMethod),
		o.setShipmentMethod(shipmentMethod),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Party() string {
	return o.party
}

func (o *Order) Currency() string {
	return o.currency
}

func (o *Order) SaleDate() time.Time {
	return o.saleDate
}

func (o *Order) Warehouse() string {
	return o.warehouse
}

// ShipFromWarehouse returns the warehouse used for Ship lines. It falls back to
// the order warehouse when no dedicated one is set.
func (o *Order) ShipFromWarehouse() string {
	if o.shipFromWarehouse == "" {
		return o.warehouse
	}
	return o.shipFromWarehouse
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) InvoiceMethod() InvoiceMethod {
	return o.invoiceMethod
}

func (o *Order) ShipmentMethod() ShipmentMethod {
	return o.shipmentMethod
}

func (o *Order) ShipmentState() ShipmentState {
	return o.shipmentState
}

func (o *Order) InvoiceState() InvoiceState {
	return o.invoiceState
}

// Lines returns the order lines in their position order. The slice is a copy.
func (o *Order) Lines() []*Line {
	lines := make([]*Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// Line finds a line by identifier.
func (o *Order) Line(id kernel.UUID) (*Line, bool) {
	for _, line := range o.lines {
		if line.ID().IsEqual(id) {
			return line, true
		}
	}
	return nil, false
}

// RoundOffLine returns the round-off line, if the order has one.
func (o *Order) RoundOffLine() (*Line, bool) {
	for _, line := range o.lines {
		if line.IsRoundOff() {
			return line, true
		}
	}
	return nil, false
}

// LineWarehouse returns the warehouse that ships a line: the ship-from warehouse
// for Ship lines and the order warehouse otherwise.
func (o *Order) LineWarehouse(line *Line) string {
	if line.DeliveryMode() == kernel.Ship {
		return o.ShipFromWarehouse()
	}
	return o.warehouse
}

// LinePlannedDate returns the date a line is planned to ship on.
func (o *Order) LinePlannedDate(line *Line) time.Time {
	if d := line.RequestedDate(); d != nil {
		return *d
	}
	return o.saleDate
}

// UntaxedAmount is the sum of the line amounts.
func (o *Order) UntaxedAmount() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.lines {
		total = total.Add(line.Amount())
	}
	return total
}

// TaxAmount is the sum of the line tax amounts.
func (o *Order) TaxAmount() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.lines {
		total = total.Add(line.TaxAmount())
	}
	return total
}

// TotalAmount is the untaxed amount plus taxes.
func (o *Order) TotalAmount() decimal.Decimal {
	return o.UntaxedAmount().Add(o.TaxAmount())
}

// SetShipFromWarehouse sets the warehouse of the sales channel used for Ship lines.
func (o *Order) SetShipFromWarehouse(warehouse string) error {
	if !o.status.IsEditable() {
		return o.notEditableError()
	}
	o.shipFromWarehouse = strings.TrimSpace(warehouse)
	return nil
}

// AddLine appends a regular line. Round-off lines go through ReplaceRoundOffLine.
func (o *Order) AddLine(line *Line) error {
	if err := line.Validate(); err != nil {
		return err
	}
	if !o.status.IsEditable() {
		return o.notEditableError()
	}
	if line.IsRoundOff() {
		return errs.NewValueIsInvalidErrorWithCause("line is invalid", errors.New("round-off lines are managed by reconciliation"))
	}
	if _, exists := o.Line(line.ID()); exists {
		return errs.NewValueIsInvalidErrorWithCause("line is invalid", fmt.Errorf("line %s already exists", line.ID()))
	}
	o.lines = append(o.lines, line)
	return nil
}

// RemoveLine deletes a regular line.
func (o *Order) RemoveLine(id kernel.UUID) error {
	if !o.status.IsEditable() {
		return o.notEditableError()
	}
	for i, line := range o.lines {
		if line.ID().IsEqual(id) {
			o.lines = append(o.lines[:i], o.lines[i+1:]...)
			return nil
		}
	}
	return errs.NewObjectNotFoundErrorWithCause("line", id, ErrLineNotFound)
}

// ReplaceRoundOffLine removes every existing round-off line and appends the given one.
// A nil line only removes. Allowed while the order is editable.
func (o *Order) ReplaceRoundOffLine(line *Line) error {
	if !o.status.CanReconcileRoundOff() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to reconcile round-off", o.status),
		)
	}
	if line != nil {
		if err := line.Validate(); err != nil {
			return err
		}
		if !line.IsRoundOff() {
			return errs.NewValueIsInvalidErrorWithCause("line is invalid", errors.New("line is not a round-off line"))
		}
	}

	kept := o.lines[:0]
	for _, existing := range o.lines {
		if !existing.IsRoundOff() {
			kept = append(kept, existing)
		}
	}
	o.lines = kept

	if line != nil {
		o.lines = append(o.lines, line)
	}
	return nil
}

// Quote moves a Draft order to Quotation.
func (o *Order) Quote() error {
	return o.transition(o.status.Quote)
}

// Confirm freezes the order lines.
func (o *Order) Confirm() error {
	return o.transition(o.status.Confirm)
}

// StartProcessing marks the order as being processed. It is called on every
// process pass before any stock is assigned.
func (o *Order) StartProcessing() error {
	return o.transition(o.status.Process)
}

// Cancel cancels an order that is not Done.
func (o *Order) Cancel() error {
	return o.transition(o.status.Cancel)
}

// UpdateRollups records the shipment and invoice rollups and completes a
// Processing order once everything is sent and paid.
//
// Returns true when the order has just become Done.
func (o *Order) UpdateRollups(shipmentState ShipmentState, invoiceState InvoiceState) (bool, error) {
	o.shipmentState = shipmentState
	o.invoiceState = invoiceState

	if o.status != Processing || !o.IsFulfilled() {
		return false, nil
	}
	if err := o.transition(o.status.Complete); err != nil {
		return false, err
	}
	return true, nil
}

// IsFulfilled reports whether the rollups allow the order to be Done.
//
// A rollup without shipments or invoices only counts as complete when its method
// is Manual or the order owes nothing of that kind: an order invoiced on shipment
// without shipments still owes its goods.
func (o *Order) IsFulfilled() bool {
	shipped := o.shipmentState == ShipmentStateSent ||
		o.shipmentState == ShipmentStateNone && (o.shipmentMethod == ShipmentManual || !o.hasGoods())
	invoiced := o.invoiceState == InvoiceStatePaid || o.invoiceMethod == InvoiceManual ||
		o.invoiceState == InvoiceStateNone && !o.hasBillableLines()
	return shipped && invoiced
}

func (o *Order) hasGoods() bool {
	for _, l := range o.lines {
		if l.IsGoods() && !l.Quantity().IsZero() {
			return true
		}
	}
	return false
}

func (o *Order) hasBillableLines() bool {
	for _, l := range o.lines {
		if !l.Quantity().IsZero() {
			return true
		}
	}
	return false
}

func (o *Order) transition(next func() (Status, error)) error {
	status, err := next()
	if err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) notEditableError() error {
	return errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("lines of a %s order cannot be edited", o.status),
	)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setParty(party string) error {
	party = strings.TrimSpace(party)
	if party == "" {
		return errs.NewValueIsRequiredError("party")
	}
	o.party = party
	return nil
}

func (o *Order) setCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return errs.NewValueIsInvalidErrorWithCause("currency is invalid", fmt.Errorf("%q is not an ISO 4217 code", currency))
	}
	o.currency = currency
	return nil
}

func (o *Order) setWarehouse(warehouse string) error {
	warehouse = strings.TrimSpace(warehouse)
	if warehouse == "" {
		return errs.NewValueIsRequiredError("warehouse")
	}
	o.warehouse = warehouse
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setInvoiceMethod(method InvoiceMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.invoiceMethod = method
	return nil
}

func (o *Order) setShipmentMethod(method ShipmentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.shipmentMethod = method
	return nil
}

func (o *Order) setLines(lines []*Line) error {
	roundOffs := 0
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
		if line.IsRoundOff() {
			roundOffs++
		}
	}
	if roundOffs > 1 {
		return errs.NewValueIsOutOfRangeError("round-off lines", roundOffs, 0, 1)
	}
	o.lines = append([]*Line(nil), lines...)
	return nil
}
