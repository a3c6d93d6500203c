package commands

import (
	"context"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/line"
	"production/internal/core/domain/services"
	"production/internal/pkg/errs"
)

type AdvanceLineCommandHandler struct {
	uowFactory UoWFactory
	reconciler reconciler
}

func NewAdvanceLineCommandHandler(uowFactory UoWFactory, propagator services.AnomalyPropagator) AdvanceLineCommandHandler {
	return AdvanceLineCommandHandler{
		uowFactory: uowFactory,
		reconciler: newReconciler(propagator),
	}
}

// Handle checks, in order, that the line exists, that no unresolved blocking anomaly is
// attached to it and the stage guards, then advances it and re-derives its order.
func (h AdvanceLineCommandHandler) Handle(ctx context.Context, cmd AdvanceLineCommand) (*line.Line, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	lineRepo := uow.LineRepository()
	l, err := lineRepo.Get(ctx, cmd.LineID())
	if err != nil {
		return nil, err
	}

	blocked, err := uow.AnomalyRepository().HasBlockingForLine(ctx, l.ID())
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, errs.NewBlockedError("production order line", l.ID().String())
	}

	now := time.Now().UTC()
	if err = l.Advance(now); err != nil {
		return nil, err
	}

	if err = lineRepo.Update(ctx, l); err != nil {
		return nil, err
	}

	if _, err = h.reconciler.reconcile(ctx, uow, nil, []kernel.UUID{l.OrderID()}, now); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return l, nil
}
