package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/line"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrUpdateLineCommandIsNotConstructed = errors.New(
	"UpdateLineCommand must be created via NewUpdateLineCommand constructor",
)

// UpdateLineCommand is the administrative edit of a line. Stage and state bypass the
// Advance guards; issue stays under anomaly control.
type UpdateLineCommand struct {
	lineID kernel.UUID
	edit   line.Edit
	stage  *kernel.ServiceStage
	state  *kernel.ProductionState

	guard guard.ConstructorGuard
}

func NewUpdateLineCommand(
	lineID kernel.UUID,
	edit line.Edit,
	stage *kernel.ServiceStage,
	state *kernel.ProductionState,
) (UpdateLineCommand, error) {
	if err := lineID.Validate(); err != nil {
		return UpdateLineCommand{}, err
	}
	if state != nil && *state == kernel.StateIssue {
		return UpdateLineCommand{}, errs.NewValueIsInvalidError("state")
	}

	return UpdateLineCommand{
		lineID: lineID,
		edit:   edit,
		stage:  stage,
		state:  state,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateLineCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLineCommandIsNotConstructed)
}

func (c UpdateLineCommand) LineID() kernel.UUID {
	return c.lineID
}

func (c UpdateLineCommand) Edit() line.Edit {
	return c.edit
}

func (c UpdateLineCommand) Stage() *kernel.ServiceStage {
	return c.stage
}

func (c UpdateLineCommand) State() *kernel.ProductionState {
	return c.state
}
