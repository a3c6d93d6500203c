package commands

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrDeleteAnomalyCommandIsNotConstructed = errors.New(
	"DeleteAnomalyCommand must be created via NewDeleteAnomalyCommand constructor",
)

type DeleteAnomalyCommand struct {
	anomalyID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteAnomalyCommand(anomalyID kernel.UUID) (DeleteAnomalyCommand, error) {
	if err := anomalyID.Validate(); err != nil {
		return DeleteAnomalyCommand{}, err
	}
	return DeleteAnomalyCommand{anomalyID: anomalyID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteAnomalyCommand) Validate() error {
	return c.guard.Validate(ErrDeleteAnomalyCommandIsNotConstructed)
}

func (c DeleteAnomalyCommand) AnomalyID() kernel.UUID {
	return c.anomalyID
}
