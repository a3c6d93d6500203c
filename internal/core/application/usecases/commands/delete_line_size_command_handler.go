package commands

import (
	"context"
)

type DeleteLineSizeCommandHandler struct {
	uowFactory UoWFactory
}

func NewDeleteLineSizeCommandHandler(uowFactory UoWFactory) DeleteLineSizeCommandHandler {
	return DeleteLineSizeCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h DeleteLineSizeCommandHandler) Handle(ctx context.Context, cmd DeleteLineSizeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.LineRepository().DeleteSize(ctx, cmd.LineID(), cmd.Size()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
