package commands

import (
	"errors"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrCreateProductionOrderCommandIsNotConstructed = errors.New(
	"CreateProductionOrderCommand must be created via NewCreateProductionOrderCommand constructor",
)

// CreateProductionOrderCommand registers a new production order header. Stage and state
// are optional starting values; issue is never accepted as a starting state.
type CreateProductionOrderCommand struct {
	orderID kernel.UUID
	code    string
	details order.Details
	stage   *kernel.ServiceStage
	state   *kernel.ProductionState

	guard guard.ConstructorGuard
}

func NewCreateProductionOrderCommand(
	orderID kernel.UUID,
	code string,
	details order.Details,
	stage *kernel.ServiceStage,
	state *kernel.ProductionState,
) (CreateProductionOrderCommand, error) {
	cmd := CreateProductionOrderCommand{
		details: details,
		stage:   stage,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCode(code),
		cmd.setState(state),
	); err != nil {
		return CreateProductionOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateProductionOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductionOrderCommandIsNotConstructed)
}

func (c CreateProductionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateProductionOrderCommand) Code() string {
	return c.code
}

func (c CreateProductionOrderCommand) Details() order.Details {
	return c.details
}

func (c CreateProductionOrderCommand) Stage() *kernel.ServiceStage {
	return c.stage
}

func (c CreateProductionOrderCommand) State() *kernel.ProductionState {
	return c.state
}

func (c *CreateProductionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateProductionOrderCommand) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	c.code = code
	return nil
}

func (c *CreateProductionOrderCommand) setState(state *kernel.ProductionState) error {
	if state != nil && *state == kernel.StateIssue {
		return errs.NewValueIsInvalidError("state")
	}
	c.state = state
	return nil
}
