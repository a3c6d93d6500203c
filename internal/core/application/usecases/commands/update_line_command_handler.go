package commands

import (
	"context"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/line"
	"production/internal/core/domain/services"
)

type UpdateLineCommandHandler struct {
	uowFactory UoWFactory
	reconciler reconciler
}

func NewUpdateLineCommandHandler(uowFactory UoWFactory, propagator services.AnomalyPropagator) UpdateLineCommandHandler {
	return UpdateLineCommandHandler{
		uowFactory: uowFactory,
		reconciler: newReconciler(propagator),
	}
}

func (h UpdateLineCommandHandler) Handle(ctx context.Context, cmd UpdateLineCommand) (*line.Line, error) {
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

	now := time.Now().UTC()
	if err = l.ApplyEdit(cmd.Edit(), now); err != nil {
		return nil, err
	}
	if stage := cmd.Stage(); stage != nil {
		if err = l.OverrideStage(*stage, now); err != nil {
			return nil, err
		}
	}
	if state := cmd.State(); state != nil && *state != l.State() {
		if err = l.OverrideState(*state, now); err != nil {
			return nil, err
		}
	}

	if err = lineRepo.Update(ctx, l); err != nil {
		return nil, err
	}

	if _, err = h.reconciler.reconcile(ctx, uow, []kernel.UUID{l.ID()}, []kernel.UUID{l.OrderID()}, now); err != nil {
		return nil, err
	}

	if l, err = lineRepo.Get(ctx, l.ID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return l, nil
}
