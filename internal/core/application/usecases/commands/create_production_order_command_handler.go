package commands

import (
	"context"
	"time"

	"production/internal/core/domain/model/order"
)

type CreateProductionOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewCreateProductionOrderCommandHandler(uowFactory UoWFactory) CreateProductionOrderCommandHandler {
	return CreateProductionOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle stores the new order. A duplicate code surfaces as a conflict error from the
// repository.
func (h CreateProductionOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CreateProductionOrderCommand,
) (*order.ProductionOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	o, err := order.NewProductionOrder(cmd.OrderID(), cmd.Code(), cmd.Details(), now)
	if err != nil {
		return nil, err
	}
	if stage := cmd.Stage(); stage != nil {
		if err = o.OverrideStage(*stage, now); err != nil {
			return nil, err
		}
	}
	if state := cmd.State(); state != nil {
		if err = o.OverrideState(*state, now); err != nil {
			return nil, err
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ProductionOrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
