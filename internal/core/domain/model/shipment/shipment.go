package shipment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrShipmentIsNotConstructed is returned for a Shipment not built with NewShipment
// or RestoreShipment.
var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

// Shipment is one batch of goods of an order leaving (or returning to) a warehouse.
// It is created by grouping order lines and only changes state through its
// transition methods; each transition updates the shipment and its moves together.
type Shipment struct {
	id           kernel.UUID
	orderID      kernel.UUID
	direction    Direction
	deliveryMode kernel.DeliveryMode
	warehouse    string
	plannedDate  time.Time
	status       Status
	moves        []*Move

	isConstructed bool
}

// NewShipment creates a Draft shipment holding at least one move.
func NewShipment(
	id, orderID kernel.UUID,
	direction Direction,
	mode kernel.DeliveryMode,
	warehouse string,
	plannedDate time.Time,
	moves []*Move,
) (*Shipment, error) {
	return RestoreShipment(id, orderID, direction, mode, warehouse, plannedDate, Draft, moves)
}

// RestoreShipment rebuilds a persisted shipment.
func RestoreShipment(
	id, orderID kernel.UUID,
	direction Direction,
	mode kernel.DeliveryMode,
	warehouse string,
	plannedDate time.Time,
	status Status,
	moves []*Move,
) (*Shipment, error) {
	s := &Shipment{
		id:            id,
		orderID:       orderID,
		direction:     direction,
		deliveryMode:  mode,
		warehouse:     strings.TrimSpace(warehouse),
		plannedDate:   plannedDate,
		status:        status,
		isConstructed: true,
	}

	var warehouseErr, movesErr error
	if s.warehouse == "" {
		warehouseErr = errs.NewValueIsRequiredError("warehouse")
	}
	if len(moves) == 0 {
		movesErr = errs.NewValueIsRequiredError("moves")
	}
	for _, m := range moves {
		if err := m.Validate(); err != nil {
			movesErr = err
			break
		}
	}

	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		direction.Validate(),
		mode.Validate(),
		status.ValidateFor(direction),
		warehouseErr,
		movesErr,
	); err != nil {
		return nil, err
	}

	s.moves = append([]*Move(nil), moves...)
	return s, nil
}

func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

func (s *Shipment) ID() kernel.UUID                   { return s.id }
func (s *Shipment) OrderID() kernel.UUID              { return s.orderID }
func (s *Shipment) Direction() Direction              { return s.direction }
func (s *Shipment) DeliveryMode() kernel.DeliveryMode { return s.deliveryMode }
func (s *Shipment) Warehouse() string                 { return s.warehouse }
func (s *Shipment) PlannedDate() time.Time            { return s.plannedDate }
func (s *Shipment) Status() Status                    { return s.status }

// Moves returns a copy of the shipment moves.
func (s *Shipment) Moves() []*Move {
	moves := make([]*Move, len(s.moves))
	copy(moves, s.moves)
	return moves
}

func (s *Shipment) IsDone() bool {
	return s.status == Done
}

// QuantityByLine sums the move quantities per origin line, signed by direction:
// returns count negatively so they can be compared with signed line quantities.
func (s *Shipment) QuantityByLine() map[kernel.UUID]decimal.Decimal {
	quantities := make(map[kernel.UUID]decimal.Decimal, len(s.moves))
	for _, m := range s.moves {
		q := m.Quantity()
		if s.direction == Return {
			q = q.Neg()
		}
		quantities[m.OriginLineID()] = quantities[m.OriginLineID()].Add(q)
	}
	return quantities
}

// Wait hands an outgoing Draft shipment over to external logistics.
func (s *Shipment) Wait() error {
	if s.direction != Outgoing || s.status != Draft {
		return s.status.transitionError("wait")
	}
	s.status = Waiting
	return nil
}

// ValidateAssign checks whether Assign would succeed, without side effects.
func (s *Shipment) ValidateAssign() error {
	if s.direction != Outgoing || (s.status != Draft && s.status != Waiting) {
		return s.status.transitionError("assign")
	}
	return nil
}

// Assign records that stock was reserved for every move.
func (s *Shipment) Assign() error {
	if err := s.ValidateAssign(); err != nil {
		return err
	}
	s.status = Assigned
	s.setMoveStatus(MoveAssigned)
	return nil
}

// Pack transitions Assigned to Packed.
func (s *Shipment) Pack() error {
	if s.status != Assigned {
		return s.status.transitionError("pack")
	}
	s.status = Packed
	return nil
}

// Receive transitions a Draft return to Received.
func (s *Shipment) Receive() error {
	if s.direction != Return || s.status != Draft {
		return s.status.transitionError("receive")
	}
	s.status = Received
	return nil
}

// Done finishes a Packed outgoing shipment or a Received return.
func (s *Shipment) Done() error {
	ready := (s.direction == Outgoing && s.status == Packed) ||
		(s.direction == Return && s.status == Received)
	if !ready {
		return s.status.transitionError("mark done")
	}
	s.status = Done
	s.setMoveStatus(MoveDone)
	return nil
}

func (s *Shipment) setMoveStatus(status MoveStatus) {
	for _, m := range s.moves {
		m.status = status
	}
}

// String is used in log records.
func (s *Shipment) String() string {
	return fmt.Sprintf("%s shipment %s (%s, %s)", s.direction, s.id, s.deliveryMode, s.status)
}
