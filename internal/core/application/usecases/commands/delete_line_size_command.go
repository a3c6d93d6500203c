package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/line"
	"production/internal/pkg/guard"
)

var ErrDeleteLineSizeCommandIsNotConstructed = errors.New(
	"DeleteLineSizeCommand must be created via NewDeleteLineSizeCommand constructor",
)

type DeleteLineSizeCommand struct {
	lineID kernel.UUID
	size   string

	guard guard.ConstructorGuard
}

func NewDeleteLineSizeCommand(lineID kernel.UUID, size string) (DeleteLineSizeCommand, error) {
	label, labelErr := line.NormalizeSizeLabel(size)
	if err := errors.Join(lineID.Validate(), labelErr); err != nil {
		return DeleteLineSizeCommand{}, err
	}
	return DeleteLineSizeCommand{lineID: lineID, size: label, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteLineSizeCommand) Validate() error {
	return c.guard.Validate(ErrDeleteLineSizeCommandIsNotConstructed)
}

func (c DeleteLineSizeCommand) LineID() kernel.UUID {
	return c.lineID
}

func (c DeleteLineSizeCommand) Size() string {
	return c.size
}
