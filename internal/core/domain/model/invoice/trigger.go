package invoice

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// TriggerKind names the event an invoice was derived for.
type TriggerKind int

const (
	// TriggerOrder is a process pass of an order invoiced on order.
	TriggerOrder TriggerKind = iota + 1
	// TriggerShipment is one or more shipments reaching Done.
	TriggerShipment
)

var triggerKindNames = map[TriggerKind]string{
	TriggerOrder:    "order",
	TriggerShipment: "shipment",
}

func ParseTriggerKind(s string) (TriggerKind, error) {
	for k, name := range triggerKindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("trigger is invalid", fmt.Errorf("%q is not a valid trigger", s))
}

func (k TriggerKind) String() string {
	return triggerKindNames[k]
}

// Trigger is the event an invoice was derived for. Shipment triggers list the
// Done shipments whose moves the invoice bills.
type Trigger struct {
	kind        TriggerKind
	shipmentIDs []kernel.UUID
}

// OrderTrigger returns the trigger of an order-level derivation.
func OrderTrigger() Trigger {
	return Trigger{kind: TriggerOrder}
}

// ShipmentTrigger returns the trigger of a derivation caused by completed shipments.
func ShipmentTrigger(shipmentIDs ...kernel.UUID) Trigger {
	return Trigger{kind: TriggerShipment, shipmentIDs: append([]kernel.UUID(nil), shipmentIDs...)}
}

// RestoreTrigger rebuilds a persisted trigger.
func RestoreTrigger(kind TriggerKind, shipmentIDs []kernel.UUID) (Trigger, error) {
	if _, ok := triggerKindNames[kind]; !ok {
		return Trigger{}, errs.NewValueIsInvalidErrorWithCause("trigger is invalid", fmt.Errorf("%d is not a valid trigger", kind))
	}
	return Trigger{kind: kind, shipmentIDs: append([]kernel.UUID(nil), shipmentIDs...)}, nil
}

func (t Trigger) Kind() TriggerKind {
	return t.kind
}

func (t Trigger) ShipmentIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), t.shipmentIDs...)
}

// IsShipmentDone reports whether the trigger is a shipment reaching Done.
func (t Trigger) IsShipmentDone() bool {
	return t.kind == TriggerShipment
}

func (t Trigger) validate() error {
	if _, ok := triggerKindNames[t.kind]; !ok {
		return errs.NewValueIsRequiredError("trigger")
	}
	return nil
}
