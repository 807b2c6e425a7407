package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/services"
)

// ReconcileRoundOffCommandHandler rebuilds the round-off line of every requested
// order in one transaction: either all orders are reconciled or none is.
type ReconcileRoundOffCommandHandler struct {
	uowFactory OrderUoWFactory
	reconciler services.RoundOffReconciler
}

func NewReconcileRoundOffCommandHandler(
	uowFactory OrderUoWFactory,
	reconciler services.RoundOffReconciler,
) ReconcileRoundOffCommandHandler {
	return ReconcileRoundOffCommandHandler{uowFactory: uowFactory, reconciler: reconciler}
}

func (h *ReconcileRoundOffCommandHandler) Handle(ctx context.Context, cmd ReconcileRoundOffCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	for _, id := range cmd.OrderIDs() {
		o, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if _, err = h.reconciler.Reconcile(o); err != nil {
			return fmt.Errorf("order %s: %w", id, err)
		}
		if err = repo.Update(ctx, o); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
