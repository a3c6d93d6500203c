package commands

import (
	"context"
	"errors"
	"time"

	"production/internal/core/domain/model/anomaly"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/services"
)

type UpdateAnomalyCommandHandler struct {
	uowFactory UoWFactory
	reconciler reconciler
}

func NewUpdateAnomalyCommandHandler(uowFactory UoWFactory, propagator services.AnomalyPropagator) UpdateAnomalyCommandHandler {
	return UpdateAnomalyCommandHandler{
		uowFactory: uowFactory,
		reconciler: newReconciler(propagator),
	}
}

// Handle applies the patch and propagates the new blocking/resolved flags.
func (h UpdateAnomalyCommandHandler) Handle(ctx context.Context, cmd UpdateAnomalyCommand) (*anomaly.Anomaly, error) {
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

	repo := uow.AnomalyRepository()
	a, err := repo.Get(ctx, cmd.AnomalyID())
	if err != nil {
		return nil, err
	}

	if err = applyAnomalyPatch(a, cmd.Patch()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, a); err != nil {
		return nil, err
	}

	if _, err = h.reconciler.reconcile(ctx, uow, anomalyLines(a), []kernel.UUID{a.OrderID()}, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

func applyAnomalyPatch(a *anomaly.Anomaly, p AnomalyPatch) error {
	var serviceErr, severityErr, descriptionErr error
	if p.Service != nil {
		serviceErr = a.SetService(*p.Service)
	}
	if p.Severity != nil {
		severityErr = a.SetSeverity(*p.Severity)
	}
	if p.Description != nil {
		descriptionErr = a.SetDescription(*p.Description)
	}
	if p.IsBlocking != nil {
		a.SetBlocking(*p.IsBlocking)
	}
	if p.Resolved != nil {
		if *p.Resolved {
			a.Resolve()
		} else {
			a.Reopen()
		}
	}
	return errors.Join(serviceErr, severityErr, descriptionErr)
}
