package anomaly

import (
	"errors"
	"strings"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

var ErrAnomalyIsNotConstructed = errors.New("Anomaly must be created via NewAnomaly constructor")

// Anomaly is attached to an order and optionally to one of its lines. The order is
// always known; when only a line is reported, the caller resolves the line's order.
type Anomaly struct {
	id          kernel.UUID
	orderID     kernel.UUID
	lineID      *kernel.UUID
	service     kernel.ServiceStage
	severity    Severity
	description string
	isBlocking  bool
	resolved    bool
	createdAt   time.Time

	isConstructed bool
}

func NewAnomaly(
	id, orderID kernel.UUID,
	lineID *kernel.UUID,
	service kernel.ServiceStage,
	severity Severity,
	description string,
	isBlocking bool,
	now time.Time,
) (*Anomaly, error) {
	a := &Anomaly{
		isBlocking:    isBlocking,
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setTargets(orderID, lineID),
		a.SetService(service),
		a.SetSeverity(severity),
		a.SetDescription(description),
	); err != nil {
		return nil, err
	}

	return a, nil
}

func RestoreAnomaly(
	id, orderID kernel.UUID,
	lineID *kernel.UUID,
	service kernel.ServiceStage,
	severity Severity,
	description string,
	isBlocking, resolved bool,
	createdAt time.Time,
) (*Anomaly, error) {
	a := &Anomaly{
		service:       service,
		severity:      severity,
		description:   description,
		isBlocking:    isBlocking,
		resolved:      resolved,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setTargets(orderID, lineID),
		service.Validate(),
		severity.Validate(),
	); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *Anomaly) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAnomalyIsNotConstructed
	}
	return nil
}

func (a *Anomaly) ID() kernel.UUID {
	return a.id
}

func (a *Anomaly) OrderID() kernel.UUID {
	return a.orderID
}

// LineID returns nil for an order-level anomaly.
func (a *Anomaly) LineID() *kernel.UUID {
	if a.lineID == nil {
		return nil
	}
	id := *a.lineID
	return &id
}

func (a *Anomaly) Service() kernel.ServiceStage {
	return a.service
}

func (a *Anomaly) Severity() Severity {
	return a.severity
}

func (a *Anomaly) Description() string {
	return a.description
}

func (a *Anomaly) IsBlocking() bool {
	return a.isBlocking
}

func (a *Anomaly) IsResolved() bool {
	return a.resolved
}

func (a *Anomaly) CreatedAt() time.Time {
	return a.createdAt
}

// Blocks reports whether the anomaly currently forces its targets into issue.
func (a *Anomaly) Blocks() bool {
	return a.isBlocking && !a.resolved
}

func (a *Anomaly) SetService(service kernel.ServiceStage) error {
	if err := service.Validate(); err != nil {
		return err
	}
	a.service = service
	return nil
}

func (a *Anomaly) SetSeverity(severity Severity) error {
	if err := severity.Validate(); err != nil {
		return err
	}
	a.severity = severity
	return nil
}

func (a *Anomaly) SetDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return errs.NewValueIsRequiredError("description")
	}
	a.description = description
	return nil
}

func (a *Anomaly) SetBlocking(isBlocking bool) {
	a.isBlocking = isBlocking
}

func (a *Anomaly) Resolve() {
	a.resolved = true
}

func (a *Anomaly) Reopen() {
	a.resolved = false
}

// DetachLine turns the anomaly into an order-level one, used when its line is deleted.
func (a *Anomaly) DetachLine() {
	a.lineID = nil
}

func (a *Anomaly) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Anomaly) setTargets(orderID kernel.UUID, lineID *kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("production_order_id", err)
	}
	a.orderID = orderID

	if lineID != nil {
		if err := lineID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("production_order_line_id", err)
		}
		id := *lineID
		a.lineID = &id
	}
	return nil
}
