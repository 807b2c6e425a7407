package shipment

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the state of a shipment.
//
// Outgoing shipments:
//
//	Draft ──> Waiting ──> Assigned ──> Packed ──> Done
//	  └────────────────────┘
//
// Returns:
//
//	Draft ──> Received ──> Done
//
// A failed assignment is not a state: the shipment stays where it was.
type Status int

const (
	Unknown Status = iota
	Draft
	Waiting
	Assigned
	Packed
	Received
	Done
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "Unknown",
		Draft:    "Draft",
		Waiting:  "Waiting",
		Assigned: "Assigned",
		Packed:   "Packed",
		Received: "Received",
		Done:     "Done",
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

func (s Status) Validate() error {
	if s <= Unknown || s > Done {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateFor checks that the status belongs to the given direction.
func (s Status) ValidateFor(direction Direction) error {
	if err := s.Validate(); err != nil {
		return err
	}
	outgoingOnly := s == Waiting || s == Assigned || s == Packed
	if (direction == Return && outgoingOnly) || (direction == Outgoing && s == Received) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status for a %s shipment", s, direction),
		)
	}
	return nil
}

func (s Status) transitionError(action string) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%s is not a valid status to %s", s, action),
	)
}

// MoveStatus is the state of a single stock move.
type MoveStatus int

const (
	MoveUnknown MoveStatus = iota
	MoveDraft
	MoveAssigned
	MoveDone
)

var moveStatusNames = map[MoveStatus]string{
	MoveDraft:    "Draft",
	MoveAssigned: "Assigned",
	MoveDone:     "Done",
}

func ParseMoveStatus(s string) (MoveStatus, error) {
	for status, name := range moveStatusNames {
		if name == s {
			return status, nil
		}
	}
	return MoveUnknown, errs.NewValueIsInvalidErrorWithCause("move status is invalid", fmt.Errorf("%q is not a valid move status", s))
}

func (s MoveStatus) String() string {
	if str, ok := moveStatusNames[s]; ok {
		return str
	}
	return "Unknown"
}

// Direction tells whether goods leave the warehouse or come back to it.
type Direction int

const (
	Outgoing Direction = iota + 1
	Return
)

var directionNames = map[Direction]string{
	Outgoing: "outgoing",
	Return:   "return",
}

func ParseDirection(s string) (Direction, error) {
	for direction, name := range directionNames {
		if name == s {
			return direction, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("direction is invalid", fmt.Errorf("%q is not a valid direction", s))
}

func (d Direction) Validate() error {
	if _, ok := directionNames[d]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("direction is invalid", fmt.Errorf("%d is not a valid direction", d))
	}
	return nil
}

func (d Direction) String() string {
	return directionNames[d]
}
