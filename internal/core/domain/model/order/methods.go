package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// InvoiceMethod decides when invoices are derived from an order.
type InvoiceMethod int

const (
	// InvoiceManual never derives invoices automatically.
	InvoiceManual InvoiceMethod = iota + 1
	// InvoiceOnOrder derives one invoice for the whole order on processing.
	InvoiceOnOrder
	// InvoiceOnShipment derives invoices for goods as their shipments reach Done.
	InvoiceOnShipment
)

var invoiceMethodNames = map[InvoiceMethod]string{
	InvoiceManual:     "manual",
	InvoiceOnOrder:    "order",
	InvoiceOnShipment: "shipment",
}

// ParseInvoiceMethod converts "manual", "order" or "shipment" into an InvoiceMethod.
func ParseInvoiceMethod(s string) (InvoiceMethod, error) {
	for method, name := range invoiceMethodNames {
		if name == s {
			return method, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("invoice method is invalid", fmt.Errorf("%q is not a valid invoice method", s))
}

func (m InvoiceMethod) Validate() error {
	if _, ok := invoiceMethodNames[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("invoice method is invalid", fmt.Errorf("%d is not a valid invoice method", m))
	}
	return nil
}

func (m InvoiceMethod) String() string {
	return invoiceMethodNames[m]
}

// ShipmentMethod decides whether processing creates and drives shipments.
type ShipmentMethod int

const (
	// ShipmentManual leaves shipment creation to the warehouse staff.
	ShipmentManual ShipmentMethod = iota + 1
	// ShipmentOnOrder creates shipments on processing and auto-fulfills pick-up batches.
	ShipmentOnOrder
)

var shipmentMethodNames = map[ShipmentMethod]string{
	ShipmentManual:  "manual",
	ShipmentOnOrder: "order",
}

// ParseShipmentMethod converts "manual" or "order" into a ShipmentMethod.
func ParseShipmentMethod(s string) (ShipmentMethod, error) {
	for method, name := range shipmentMethodNames {
		if name == s {
			return method, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("shipment method is invalid", fmt.Errorf("%q is not a valid shipment method", s))
}

func (m ShipmentMethod) Validate() error {
	if _, ok := shipmentMethodNames[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("shipment method is invalid", fmt.Errorf("%d is not a valid shipment method", m))
	}
	return nil
}

func (m ShipmentMethod) String() string {
	return shipmentMethodNames[m]
}

// ShipmentState is the rollup of the shipments attached to an order.
type ShipmentState int

const (
	// ShipmentStateNone means the order has no shipment.
	ShipmentStateNone ShipmentState = iota
	// ShipmentStateWaiting means at least one shipment is not Done yet.
	ShipmentStateWaiting
	// ShipmentStateSent means every shipment is Done.
	ShipmentStateSent
)

var shipmentStateNames = map[ShipmentState]string{
	ShipmentStateNone:    "none",
	ShipmentStateWaiting: "waiting",
	ShipmentStateSent:    "sent",
}

func ParseShipmentState(s string) (ShipmentState, error) {
	for state, name := range shipmentStateNames {
		if name == s {
			return state, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("shipment state is invalid", fmt.Errorf("%q is not a valid shipment state", s))
}

func (s ShipmentState) String() string {
	return shipmentStateNames[s]
}

// InvoiceState is the rollup of the active invoices attached to an order.
type InvoiceState int

const (
	// InvoiceStateNone means the order has no active invoice.
	InvoiceStateNone InvoiceState = iota
	// InvoiceStateWaiting means at least one active invoice is not paid yet.
	InvoiceStateWaiting
	// InvoiceStatePaid means every active invoice is paid.
	InvoiceStatePaid
)

var invoiceStateNames = map[InvoiceState]string{
	InvoiceStateNone:    "none",
	InvoiceStateWaiting: "waiting",
	InvoiceStatePaid:    "paid",
}

func ParseInvoiceState(s string) (InvoiceState, error) {
	for state, name := range invoiceStateNames {
		if name == s {
			return state, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("invoice state is invalid", fmt.Errorf("%q is not a valid invoice state", s))
}

func (s InvoiceState) String() string {
	return invoiceStateNames[s]
}
