package services

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// RoundOffReconciler keeps the single round-off line of an order in sync with its
// total. The line is rebuilt from scratch on every call:
//
//  1. every existing round-off line is removed
//  2. floored = floor(total), diff = total - floored
//  3. diff == 0 leaves the order without round-off line
//  4. otherwise one line with quantity -1 and unit price diff is appended
//
// floor rounds toward negative infinity, so a total of -200.25 is floored to -201
// and the line carries a unit price of 0.75.
//
// Example usage:
//
//	reconciler := services.NewRoundOffReconciler()
//	line, err := reconciler.Reconcile(o)
//	if err != nil {
//	    return err
//	}
//	if line == nil {
//	    // total already whole
//	}
type RoundOffReconciler struct {
	newID func() kernel.UUID
}

// NewRoundOffReconciler creates a reconciler generating random line identifiers.
func NewRoundOffReconciler() RoundOffReconciler {
	return RoundOffReconciler{newID: kernel.NewUUID}
}

// Reconcile replaces the round-off line of the order and returns the new line,
// or nil when the total has no fractional part.
func (r RoundOffReconciler) Reconcile(o *order.Order) (*order.Line, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	if err := o.ReplaceRoundOffLine(nil); err != nil {
		return nil, err
	}

	_, diff := kernel.SplitFraction(o.TotalAmount())
	if diff.IsZero() {
		return nil, nil
	}

	newID := r.newID
	if newID == nil {
		newID = kernel.NewUUID
	}
	line, err := order.NewRoundOffLine(newID(), diff)
	if err != nil {
		return nil, err
	}
	if err := o.ReplaceRoundOffLine(line); err != nil {
		return nil, err
	}
	return line, nil
}
