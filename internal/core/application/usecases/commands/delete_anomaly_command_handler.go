package commands

import (
	"context"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/services"
)

type DeleteAnomalyCommandHandler struct {
	uowFactory UoWFactory
	reconciler reconciler
}

func NewDeleteAnomalyCommandHandler(uowFactory UoWFactory, propagator services.AnomalyPropagator) DeleteAnomalyCommandHandler {
	return DeleteAnomalyCommandHandler{
		uowFactory: uowFactory,
		reconciler: newReconciler(propagator),
	}
}

// Handle removes the anomaly and lifts issue from its targets when nothing else blocks them.
func (h DeleteAnomalyCommandHandler) Handle(ctx context.Context, cmd DeleteAnomalyCommand) error {
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

	repo := uow.AnomalyRepository()
	a, err := repo.Get(ctx, cmd.AnomalyID())
	if err != nil {
		return err
	}

	if err = repo.Delete(ctx, a.ID()); err != nil {
		return err
	}

	if _, err = h.reconciler.reconcile(ctx, uow, anomalyLines(a), []kernel.UUID{a.OrderID()}, time.Now().UTC()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
