package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrAdvanceLineCommandIsNotConstructed = errors.New(
	"AdvanceLineCommand must be created via NewAdvanceLineCommand constructor",
)

// AdvanceLineCommand moves a line one step through the stage machine.
//
//	cmd, _ := NewAdvanceLineCommand(lineID)
//	l, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrBlocked):
//	    // an unresolved blocking anomaly is attached to the line
//	case errors.Is(err, errs.ErrPreconditionFailed):
//	    // quantity guard of the current stage not met
//	}
type AdvanceLineCommand struct {
	lineID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAdvanceLineCommand(lineID kernel.UUID) (AdvanceLineCommand, error) {
	if err := lineID.Validate(); err != nil {
		return AdvanceLineCommand{}, err
	}
	return AdvanceLineCommand{lineID: lineID, guard: guard.NewConstructorGuard()}, nil
}

func (c AdvanceLineCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceLineCommandIsNotConstructed)
}

func (c AdvanceLineCommand) LineID() kernel.UUID {
	return c.lineID
}
