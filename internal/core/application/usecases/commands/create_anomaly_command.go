package commands

import (
	"errors"
	"strings"

	"production/internal/core/domain/model/anomaly"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrCreateAnomalyCommandIsNotConstructed = errors.New(
	"CreateAnomalyCommand must be created via NewCreateAnomalyCommand constructor",
)

// CreateAnomalyCommand reports an anomaly against an order, a line, or both. When only
// the line is given the order is taken from the line.
type CreateAnomalyCommand struct {
	orderID     *kernel.UUID
	lineID      *kernel.UUID
	service     kernel.ServiceStage
	severity    anomaly.Severity
	description string
	isBlocking  bool

	guard guard.ConstructorGuard
}

func NewCreateAnomalyCommand(
	orderID, lineID *kernel.UUID,
	service kernel.ServiceStage,
	severity anomaly.Severity,
	description string,
	isBlocking bool,
) (CreateAnomalyCommand, error) {
	cmd := CreateAnomalyCommand{
		orderID:     orderID,
		lineID:      lineID,
		service:     service,
		severity:    severity,
		description: strings.TrimSpace(description),
		isBlocking:  isBlocking,
		guard:       guard.NewConstructorGuard(),
	}

	var targetErr error
	if orderID == nil && lineID == nil {
		targetErr = errs.NewValueIsRequiredError("production_order_id or production_order_line_id")
	}
	var descriptionErr error
	if cmd.description == "" {
		descriptionErr = errs.NewValueIsRequiredError("description")
	}

	if err := errors.Join(
		targetErr,
		validateOptionalID(orderID),
		validateOptionalID(lineID),
		service.Validate(),
		severity.Validate(),
		descriptionErr,
	); err != nil {
		return CreateAnomalyCommand{}, err
	}

	return cmd, nil
}

func (c CreateAnomalyCommand) Validate() error {
	return c.guard.Validate(ErrCreateAnomalyCommandIsNotConstructed)
}

func (c CreateAnomalyCommand) OrderID() *kernel.UUID {
	return c.orderID
}

func (c CreateAnomalyCommand) LineID() *kernel.UUID {
	return c.lineID
}

func (c CreateAnomalyCommand) Service() kernel.ServiceStage {
	return c.service
}

func (c CreateAnomalyCommand) Severity() anomaly.Severity {
	return c.severity
}

func (c CreateAnomalyCommand) Description() string {
	return c.description
}

func (c CreateAnomalyCommand) IsBlocking() bool {
	return c.isBlocking
}

func validateOptionalID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	return id.Validate()
}
