package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrReconcileRoundOffCommandIsNotConstructed = errors.New(
		"ReconcileRoundOffCommand must be created via NewReconcileRoundOffCommand constructor",
	)
	ErrOrderIDsAreRequired = errors.New("at least one order ID is required")
)

// ReconcileRoundOffCommand rebuilds the round-off line of several orders at once.
type ReconcileRoundOffCommand struct { //nolint:recvcheck //using for validation
	orderIDs []kernel.UUID

	guard guard.ConstructorGuard
}

func NewReconcileRoundOffCommand(orderIDs []kernel.UUID) (ReconcileRoundOffCommand, error) {
	if len(orderIDs) == 0 {
		return ReconcileRoundOffCommand{}, ErrOrderIDsAreRequired
	}

	unique := make([]kernel.UUID, 0, len(orderIDs))
	seen := make(map[kernel.UUID]struct{}, len(orderIDs))
	for i, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return ReconcileRoundOffCommand{}, fmt.Errorf("order %d: %w", i, err)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	return ReconcileRoundOffCommand{orderIDs: unique, guard: guard.NewConstructorGuard()}, nil
}

func (c ReconcileRoundOffCommand) Validate() error {
	return c.guard.Validate(ErrReconcileRoundOffCommandIsNotConstructed)
}

// OrderIDs returns the distinct order identifiers in request order.
func (c ReconcileRoundOffCommand) OrderIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.orderIDs...)
}
