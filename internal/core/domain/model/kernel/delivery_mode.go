package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// DeliveryMode tells how the goods of an order line or shipment reach the customer.
//
//   - PickUp: the customer takes the goods during the same visit; the shipment is
//     driven to Done while the order is processed.
//   - Ship: the goods are handed over to external logistics; the shipment waits.
type DeliveryMode int

const (
	// NoDeliveryMode is used by lines that do not move goods (services, round-off).
	NoDeliveryMode DeliveryMode = iota
	PickUp
	Ship
)

var deliveryModeNames = map[DeliveryMode]string{
	NoDeliveryMode: "",
	PickUp:         "pick_up",
	Ship:           "ship",
}

// ParseDeliveryMode converts the API/storage code ("pick_up", "ship", "") into a DeliveryMode.
func ParseDeliveryMode(code string) (DeliveryMode, error) {
	for mode, name := range deliveryModeNames {
		if name == code {
			return mode, nil
		}
	}
	return NoDeliveryMode, errs.NewValueIsInvalidErrorWithCause(
		"delivery mode is invalid",
		fmt.Errorf("%q is not a known delivery mode", code),
	)
}

// Validate accepts PickUp and Ship only.
func (m DeliveryMode) Validate() error {
	if m != PickUp && m != Ship {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery mode is invalid",
			fmt.Errorf("%d is not a valid delivery mode", m),
		)
	}
	return nil
}

// IsSet reports whether a delivery mode was chosen.
func (m DeliveryMode) IsSet() bool {
	return m != NoDeliveryMode
}

// String returns the storage code of the mode.
func (m DeliveryMode) String() string {
	return deliveryModeNames[m]
}
