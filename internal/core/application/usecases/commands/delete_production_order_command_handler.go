package commands

import (
	"context"
)

type DeleteProductionOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewDeleteProductionOrderCommandHandler(uowFactory UoWFactory) DeleteProductionOrderCommandHandler {
	return DeleteProductionOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle removes the order together with its lines, sizes and anomalies.
func (h DeleteProductionOrderCommandHandler) Handle(ctx context.Context, cmd DeleteProductionOrderCommand) error {
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

	orderRepo := uow.ProductionOrderRepository()
	if _, err := orderRepo.Get(ctx, cmd.OrderID()); err != nil {
		return err
	}

	if err := uow.AnomalyRepository().DeleteByOrder(ctx, cmd.OrderID()); err != nil {
		return err
	}
	if err := uow.LineRepository().DeleteByOrder(ctx, cmd.OrderID()); err != nil {
		return err
	}
	if err := orderRepo.Delete(ctx, cmd.OrderID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
