package commands

import (
	"context"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/line"
	"production/internal/core/domain/services"
)

type CreateLineCommandHandler struct {
	uowFactory UoWFactory
	reconciler reconciler
}

func NewCreateLineCommandHandler(uowFactory UoWFactory, propagator services.AnomalyPropagator) CreateLineCommandHandler {
	return CreateLineCommandHandler{
		uowFactory: uowFactory,
		reconciler: newReconciler(propagator),
	}
}

// Handle appends a line to the order at the next free seq and re-derives the order state.
func (h CreateLineCommandHandler) Handle(ctx context.Context, cmd CreateLineCommand) (*line.Line, error) {
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

	o, err := uow.ProductionOrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	l, err := allocateLine(ctx, uow.LineRepository(), o, cmd.ArticleRef(), cmd.Color(), cmd.Quantities(), now)
	if err != nil {
		return nil, err
	}

	if _, err = h.reconciler.reconcile(ctx, uow, nil, []kernel.UUID{o.ID()}, now); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return l, nil
}
