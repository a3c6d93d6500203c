package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrReconcileOrdersCommandIsNotConstructed = errors.New(
	"ReconcileOrdersCommand must be created via NewReconcileOrdersCommand constructor",
)

// ReconcileOrdersCommand re-runs anomaly propagation and state derivation over every line
// of one order, or of all orders when no id is given. It repairs states written outside
// the application.
type ReconcileOrdersCommand struct {
	orderID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewReconcileOrdersCommand(orderID *kernel.UUID) (ReconcileOrdersCommand, error) {
	if err := validateOptionalID(orderID); err != nil {
		return ReconcileOrdersCommand{}, err
	}
	return ReconcileOrdersCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c ReconcileOrdersCommand) Validate() error {
	return c.guard.Validate(ErrReconcileOrdersCommandIsNotConstructed)
}

func (c ReconcileOrdersCommand) OrderID() *kernel.UUID {
	return c.orderID
}

type ReconcileResult struct {
	Checked   int
	Corrected int
}
