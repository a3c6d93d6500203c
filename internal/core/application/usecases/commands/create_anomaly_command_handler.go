package commands

import (
	"context"
	"fmt"
	"time"

	"production/internal/core/domain/model/anomaly"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/services"
	"production/internal/pkg/errs"
)

type CreateAnomalyCommandHandler struct {
	uowFactory UoWFactory
	reconciler reconciler
}

func NewCreateAnomalyCommandHandler(uowFactory UoWFactory, propagator services.AnomalyPropagator) CreateAnomalyCommandHandler {
	return CreateAnomalyCommandHandler{
		uowFactory: uowFactory,
		reconciler: newReconciler(propagator),
	}
}

// Handle stores the anomaly and propagates it to its line and order.
func (h CreateAnomalyCommandHandler) Handle(ctx context.Context, cmd CreateAnomalyCommand) (*anomaly.Anomaly, error) {
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

	orderID, err := resolveAnomalyOrder(ctx, uow, cmd.OrderID(), cmd.LineID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	a, err := anomaly.NewAnomaly(kernel.NewUUID(), orderID, cmd.LineID(), cmd.Service(), cmd.Severity(),
		cmd.Description(), cmd.IsBlocking(), now)
	if err != nil {
		return nil, err
	}

	if err = uow.AnomalyRepository().Add(ctx, a); err != nil {
		return nil, err
	}

	if _, err = h.reconciler.reconcile(ctx, uow, anomalyLines(a), []kernel.UUID{a.OrderID()}, now); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return a, nil
}

// resolveAnomalyOrder returns the order an anomaly belongs to, checking that the given
// targets exist and agree with each other.
func resolveAnomalyOrder(ctx context.Context, uow UoW, orderID, lineID *kernel.UUID) (kernel.UUID, error) {
	if lineID != nil {
		l, err := uow.LineRepository().Get(ctx, *lineID)
		if err != nil {
			return kernel.UUID{}, err
		}
		if orderID != nil && !orderID.IsEqual(l.OrderID()) {
			return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(
				"production_order_id",
				fmt.Errorf("line %s belongs to order %s", l.ID(), l.OrderID()),
			)
		}
		return l.OrderID(), nil
	}

	o, err := uow.ProductionOrderRepository().Get(ctx, *orderID)
	if err != nil {
		return kernel.UUID{}, err
	}
	return o.ID(), nil
}

func anomalyLines(a *anomaly.Anomaly) []kernel.UUID {
	if id := a.LineID(); id != nil {
		return []kernel.UUID{*id}
	}
	return nil
}
