package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrDeleteProductionOrderCommandIsNotConstructed = errors.New(
	"DeleteProductionOrderCommand must be created via NewDeleteProductionOrderCommand constructor",
)

type DeleteProductionOrderCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteProductionOrderCommand(orderID kernel.UUID) (DeleteProductionOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return DeleteProductionOrderCommand{}, err
	}
	return DeleteProductionOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteProductionOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteProductionOrderCommandIsNotConstructed)
}

func (c DeleteProductionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
