package invoice

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status of an invoice.
//
//	Draft ──> Posted ──> Paid
//	  │          │
//	  └──────────┴──> Cancelled
//
// Posting a zero-total invoice settles it immediately.
type Status int

const (
	Unknown Status = iota
	Draft
	Posted
	Paid
	Cancelled
)

var statusNames = map[Status]string{
	Draft:     "Draft",
	Posted:    "Posted",
	Paid:      "Paid",
	Cancelled: "Cancelled",
}

func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// IsActive reports whether the invoice still counts for billing.
func (s Status) IsActive() bool {
	return s != Cancelled
}

func (s Status) transitionError(action string) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%s is not a valid status to %s", s, action),
	)
}

// Type is chosen by the sign of the derived amount.
type Type int

const (
	Sale Type = iota + 1
	CreditNote
)

var typeNames = map[Type]string{
	Sale:       "sale",
	CreditNote: "credit_note",
}

func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("invoice type is invalid", fmt.Errorf("%q is not a valid invoice type", s))
}

func (t Type) Validate() error {
	if _, ok := typeNames[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("invoice type is invalid", fmt.Errorf("%d is not a valid invoice type", t))
	}
	return nil
}

func (t Type) String() string {
	return typeNames[t]
}
