package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCompleteShipmentCommandIsNotConstructed = errors.New(
	"CompleteShipmentCommand must be created via NewCompleteShipmentCommand constructor",
)

// CompleteShipmentCommand reports that logistics delivered an outgoing shipment or
// received a return.
type CompleteShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCompleteShipmentCommand(shipmentID kernel.UUID) (CompleteShipmentCommand, error) {
	if err := shipmentID.Validate(); err != nil {
		return CompleteShipmentCommand{}, err
	}
	return CompleteShipmentCommand{shipmentID: shipmentID, guard: guard.NewConstructorGuard()}, nil
}

func (c CompleteShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCompleteShipmentCommandIsNotConstructed)
}

func (c CompleteShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}
