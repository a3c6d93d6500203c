package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/line"
	"production/internal/pkg/guard"
)

var ErrUpsertLineSizeCommandIsNotConstructed = errors.New(
	"UpsertLineSizeCommand must be created via NewUpsertLineSizeCommand constructor",
)

type UpsertLineSizeCommand struct {
	lineID kernel.UUID
	size   string
	qty    line.Quantities

	guard guard.ConstructorGuard
}

// NewUpsertLineSizeCommand validates a size row. qtyToProduce defaults to qtyOrdered.
func NewUpsertLineSizeCommand(lineID kernel.UUID, size string, qtyOrdered int, qtyToProduce *int) (UpsertLineSizeCommand, error) {
	label, labelErr := line.NormalizeSizeLabel(size)
	qty, qtyErr := line.NewQuantities(qtyOrdered, qtyToProduce)
	if err := errors.Join(lineID.Validate(), labelErr, qtyErr); err != nil {
		return UpsertLineSizeCommand{}, err
	}

	return UpsertLineSizeCommand{
		lineID: lineID,
		size:   label,
		qty:    qty,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c UpsertLineSizeCommand) Validate() error {
	return c.guard.Validate(ErrUpsertLineSizeCommandIsNotConstructed)
}

func (c UpsertLineSizeCommand) LineID() kernel.UUID {
	return c.lineID
}

func (c UpsertLineSizeCommand) Size() string {
	return c.size
}

func (c UpsertLineSizeCommand) Quantities() line.Quantities {
	return c.qty
}
