package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a sales order.
//
// State transitions:
//
//	Draft ──> Quotation ──> Confirmed ──> Processing ──> Done
//	  │           │             │             │
//	  └───────────┴─────────────┴─────────────┴──> Cancelled
//
// Processing may be re-entered any number of times: every process pass starts by
// moving a Confirmed or Processing order to Processing.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Draft is the initial status; lines may be added and edited.
	Draft

	// Quotation is an offer sent to the party; lines may still be edited.
	Quotation

	// Confirmed orders are frozen and wait for the first process pass.
	Confirmed

	// Processing orders have shipments and invoices derived from them.
	Processing

	// Done is reached when every shipment is sent and every invoice is paid.
	Done

	// Cancelled orders are never processed.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Draft:      "Draft",
		Quotation:  "Quotation",
		Confirmed:  "Confirmed",
		Processing: "Processing",
		Done:       "Done",
		Cancelled:  "Cancelled",
	}
}

// ParseStatus converts a persisted status name into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsEditable reports whether lines may be added, changed or removed.
func (s Status) IsEditable() bool {
	return s == Draft || s == Quotation
}

// CanReconcileRoundOff reports whether the round-off line may still be replaced.
func (s Status) CanReconcileRoundOff() bool {
	return s.IsEditable()
}

// IsFinal reports whether the status accepts no further transitions.
func (s Status) IsFinal() bool {
	return s == Done || s == Cancelled
}

// Quote transitions Draft to Quotation.
func (s Status) Quote() (Status, error) {
	if s != Draft {
		return 0, s.transitionError("quote")
	}
	return Quotation, nil
}

// Confirm transitions Draft or Quotation to Confirmed.
func (s Status) Confirm() (Status, error) {
	if s != Draft && s != Quotation {
		return 0, s.transitionError("confirm")
	}
	return Confirmed, nil
}

// Process transitions Confirmed or Processing to Processing.
func (s Status) Process() (Status, error) {
	if s != Confirmed && s != Processing {
		return 0, s.transitionError("process")
	}
	return Processing, nil
}

// Complete transitions Processing to Done.
func (s Status) Complete() (Status, error) {
	if s != Processing {
		return 0, s.transitionError("complete")
	}
	return Done, nil
}

// Cancel transitions any non-final status to Cancelled.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s.IsFinal() {
		return 0, s.transitionError("cancel")
	}
	return Cancelled, nil
}

func (s Status) transitionError(action string) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%s is not a valid status to %s", s.String(), action),
	)
}
