package commands

import (
	"errors"
	"strings"

	"production/internal/core/domain/model/anomaly"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrUpdateAnomalyCommandIsNotConstructed = errors.New(
	"UpdateAnomalyCommand must be created via NewUpdateAnomalyCommand constructor",
)

// AnomalyPatch lists the mutable anomaly fields; nil fields are kept. Targets cannot change.
type AnomalyPatch struct {
	Service     *kernel.ServiceStage
	Severity    *anomaly.Severity
	Description *string
	IsBlocking  *bool
	Resolved    *bool
}

type UpdateAnomalyCommand struct {
	anomalyID kernel.UUID
	patch     AnomalyPatch

	guard guard.ConstructorGuard
}

func NewUpdateAnomalyCommand(anomalyID kernel.UUID, patch AnomalyPatch) (UpdateAnomalyCommand, error) {
	var serviceErr, severityErr, descriptionErr error
	if patch.Service != nil {
		serviceErr = patch.Service.Validate()
	}
	if patch.Severity != nil {
		severityErr = patch.Severity.Validate()
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) == "" {
		descriptionErr = errs.NewValueIsRequiredError("description")
	}

	if err := errors.Join(anomalyID.Validate(), serviceErr, severityErr, descriptionErr); err != nil {
		return UpdateAnomalyCommand{}, err
	}

	return UpdateAnomalyCommand{
		anomalyID: anomalyID,
		patch:     patch,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateAnomalyCommand) Validate() error {
	return c.guard.Validate(ErrUpdateAnomalyCommandIsNotConstructed)
}

func (c UpdateAnomalyCommand) AnomalyID() kernel.UUID {
	return c.anomalyID
}

func (c UpdateAnomalyCommand) Patch() AnomalyPatch {
	return c.patch
}
