package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrDeleteLineCommandIsNotConstructed = errors.New(
	"DeleteLineCommand must be created via NewDeleteLineCommand constructor",
)

type DeleteLineCommand struct {
	lineID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteLineCommand(lineID kernel.UUID) (DeleteLineCommand, error) {
	if err := lineID.Validate(); err != nil {
		return DeleteLineCommand{}, err
	}
	return DeleteLineCommand{lineID: lineID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteLineCommand) Validate() error {
	return c.guard.Validate(ErrDeleteLineCommandIsNotConstructed)
}

func (c DeleteLineCommand) LineID() kernel.UUID {
	return c.lineID
}
