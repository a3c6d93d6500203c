package commands

import (
	"context"
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/line"
	"production/internal/core/domain/model/order"
	"production/internal/core/ports"
)

// allocateLine inserts a new line at max(seq)+1 of the order. When that seq is taken
// concurrently the insert is retried once at the following seq; any other failure, or
// a second collision, is returned.
func allocateLine(
	ctx context.Context,
	repo ports.LineRepository,
	o *order.ProductionOrder,
	articleRef, color string,
	qty line.Quantities,
	now time.Time,
) (*line.Line, error) {
	maxSeq, err := repo.MaxSeq(ctx, o.ID())
	if err != nil {
		return nil, err
	}

	l, err := line.NewLine(kernel.NewUUID(), o.ID(), o.Code(), maxSeq+1, articleRef, color, qty, now)
	if err != nil {
		return nil, err
	}

	err = repo.Add(ctx, l)
	if err == nil {
		return l, nil
	}
	if !errors.Is(err, ports.ErrLineSequenceTaken) {
		return nil, err
	}

	if err = l.Resequence(o.Code(), l.Seq()+1); err != nil {
		return nil, err
	}
	if err = repo.Add(ctx, l); err != nil {
		return nil, err
	}

	return l, nil
}
