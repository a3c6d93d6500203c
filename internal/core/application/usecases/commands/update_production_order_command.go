package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrUpdateProductionOrderCommandIsNotConstructed = errors.New(
	"UpdateProductionOrderCommand must be created via NewUpdateProductionOrderCommand constructor",
)

// UpdateProductionOrderCommand is the administrative edit of an order header. Stage and
// state are set as given, without the line stage machine.
type UpdateProductionOrderCommand struct {
	orderID kernel.UUID
	patch   order.DetailsPatch
	stage   *kernel.ServiceStage
	state   *kernel.ProductionState

	guard guard.ConstructorGuard
}

func NewUpdateProductionOrderCommand(
	orderID kernel.UUID,
	patch order.DetailsPatch,
	stage *kernel.ServiceStage,
	state *kernel.ProductionState,
) (UpdateProductionOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UpdateProductionOrderCommand{}, err
	}
	if state != nil && *state == kernel.StateIssue {
		return UpdateProductionOrderCommand{}, errs.NewValueIsInvalidError("state")
	}

	return UpdateProductionOrderCommand{
		orderID: orderID,
		patch:   patch,
		stage:   stage,
		state:   state,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateProductionOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProductionOrderCommandIsNotConstructed)
}

func (c UpdateProductionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateProductionOrderCommand) Patch() order.DetailsPatch {
	return c.patch
}

func (c UpdateProductionOrderCommand) Stage() *kernel.ServiceStage {
	return c.stage
}

func (c UpdateProductionOrderCommand) State() *kernel.ProductionState {
	return c.state
}
