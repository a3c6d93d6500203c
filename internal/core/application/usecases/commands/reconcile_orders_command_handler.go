package commands

import (
	"context"
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/services"
	"production/internal/pkg/errs"
)

type ReconcileOrdersCommandHandler struct {
	uowFactory UoWFactory
	reconciler reconciler
}

func NewReconcileOrdersCommandHandler(uowFactory UoWFactory, propagator services.AnomalyPropagator) ReconcileOrdersCommandHandler {
	return ReconcileOrdersCommandHandler{
		uowFactory: uowFactory,
		reconciler: reconciler{propagator: propagator, keepPastProduction: true},
	}
}

// Handle treats every line of the selected orders as affected. Each order is reconciled
// in its own unit of work so one failure does not undo the others. An order deleted
// after it was listed is skipped; any other error stops the run. Invoiced and shipped
// orders are not demoted to produced.
func (h ReconcileOrdersCommandHandler) Handle(ctx context.Context, cmd ReconcileOrdersCommand) (ReconcileResult, error) {
	var result ReconcileResult
	if err := cmd.Validate(); err != nil {
		return result, err
	}

	orderIDs, err := h.selectOrders(ctx, cmd)
	if err != nil {
		return result, err
	}

	for _, orderID := range orderIDs {
		corrected, reconcileErr := h.reconcileOne(ctx, orderID)
		if cmd.OrderID() == nil && errors.Is(reconcileErr, errs.ErrObjectNotFound) {
			continue
		}
		if reconcileErr != nil {
			return result, reconcileErr
		}
		result.Checked++
		result.Corrected += corrected
	}

	return result, nil
}

func (h ReconcileOrdersCommandHandler) selectOrders(ctx context.Context, cmd ReconcileOrdersCommand) ([]kernel.UUID, error) {
	if id := cmd.OrderID(); id != nil {
		return []kernel.UUID{*id}, nil
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.ProductionOrderRepository().ListIDs(ctx)
}

func (h ReconcileOrdersCommandHandler) reconcileOne(ctx context.Context, orderID kernel.UUID) (int, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	lines, err := uow.LineRepository().ListByOrder(ctx, orderID)
	if err != nil {
		return 0, err
	}
	lineIDs := make([]kernel.UUID, 0, len(lines))
	for _, l := range lines {
		lineIDs = append(lineIDs, l.ID())
	}

	corrected, err := h.reconciler.reconcile(ctx, uow, lineIDs, []kernel.UUID{orderID}, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return corrected, nil
}
