package ports

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/line"
	"production/internal/pkg/errs"
)

// ErrLineSequenceTaken is returned by LineRepository.Add when another line of the same
// order already holds the seq.
var ErrLineSequenceTaken = errs.NewConflictError("production order line", "sequence already taken")

type LineRepository interface {
	// Add inserts the line. A failed insert leaves the surrounding transaction usable.
	Add(ctx context.Context, l *line.Line) error

	Update(ctx context.Context, l *line.Line) error

	Get(ctx context.Context, id kernel.UUID) (*line.Line, error)

	// ListByOrder returns the lines of an order ordered by seq.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*line.Line, error)

	// MaxSeq returns the highest seq used by the order, 0 when it has no lines.
	MaxSeq(ctx context.Context, orderID kernel.UUID) (int, error)

	// Delete removes the line and its sizes.
	Delete(ctx context.Context, id kernel.UUID) error

	// DeleteByOrder removes every line of the order with their sizes.
	DeleteByOrder(ctx context.Context, orderID kernel.UUID) error

	// UpsertSize inserts the size or, when its label exists for the line, replaces the quantities.
	UpsertSize(ctx context.Context, size *line.Size) error

	DeleteSize(ctx context.Context, lineID kernel.UUID, label string) error

	// ListSizes returns the sizes of a line ordered by label.
	ListSizes(ctx context.Context, lineID kernel.UUID) ([]*line.Size, error)
}
