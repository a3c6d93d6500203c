package commands

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/line"
)

type UpsertLineSizeCommandHandler struct {
	uowFactory UoWFactory
}

func NewUpsertLineSizeCommandHandler(uowFactory UoWFactory) UpsertLineSizeCommandHandler {
	return UpsertLineSizeCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle inserts or replaces the size row and returns all sizes of the line. Sizes do
// not take part in state derivation.
func (h UpsertLineSizeCommandHandler) Handle(ctx context.Context, cmd UpsertLineSizeCommand) ([]*line.Size, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	lineRepo := uow.LineRepository()
	if _, err := lineRepo.Get(ctx, cmd.LineID()); err != nil {
		return nil, err
	}

	size, err := line.NewSize(kernel.NewUUID(), cmd.LineID(), cmd.Size(), cmd.Quantities())
	if err != nil {
		return nil, err
	}

	if err = lineRepo.UpsertSize(ctx, size); err != nil {
		return nil, err
	}

	sizes, err := lineRepo.ListSizes(ctx, cmd.LineID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return sizes, nil
}
