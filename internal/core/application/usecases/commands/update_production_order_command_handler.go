package commands

import (
	"context"
	"time"

	"production/internal/core/domain/model/order"
)

type UpdateProductionOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewUpdateProductionOrderCommandHandler(uowFactory UoWFactory) UpdateProductionOrderCommandHandler {
	return UpdateProductionOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies the header edit. The result is not re-derived from the lines: the
// override stands until the next line or anomaly mutation.
func (h UpdateProductionOrderCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateProductionOrderCommand,
) (*order.ProductionOrder, error) {
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

	repo := uow.ProductionOrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	o.UpdateDetails(o.Details().Apply(cmd.Patch()), now)
	if stage := cmd.Stage(); stage != nil {
		if err = o.OverrideStage(*stage, now); err != nil {
			return nil, err
		}
	}
	if state := cmd.State(); state != nil && *state != o.State() {
		if err = o.OverrideState(*state, now); err != nil {
			return nil, err
		}
	}

	if err = repo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
