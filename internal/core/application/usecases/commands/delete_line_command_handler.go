package commands

import (
	"context"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/services"
)

type DeleteLineCommandHandler struct {
	uowFactory UoWFactory
	reconciler reconciler
}

func NewDeleteLineCommandHandler(uowFactory UoWFactory, propagator services.AnomalyPropagator) DeleteLineCommandHandler {
	return DeleteLineCommandHandler{
		uowFactory: uowFactory,
		reconciler: newReconciler(propagator),
	}
}

// Handle deletes the line and its sizes. Its anomalies stay on the order without the
// line reference. The order is re-derived from the remaining lines and keeps its state
// when none remain.
func (h DeleteLineCommandHandler) Handle(ctx context.Context, cmd DeleteLineCommand) error {
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

	lineRepo := uow.LineRepository()
	l, err := lineRepo.Get(ctx, cmd.LineID())
	if err != nil {
		return err
	}

	if err = uow.AnomalyRepository().DetachLine(ctx, l.ID()); err != nil {
		return err
	}
	if err = lineRepo.Delete(ctx, l.ID()); err != nil {
		return err
	}

	if _, err = h.reconciler.reconcile(ctx, uow, nil, []kernel.UUID{l.OrderID()}, time.Now().UTC()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
