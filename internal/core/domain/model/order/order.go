package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

var (
	// ErrProductionOrderIsNotConstructed is returned for a ProductionOrder that did not
	// come from NewProductionOrder or RestoreProductionOrder.
	ErrProductionOrderIsNotConstructed = errors.New("ProductionOrder must be created via NewProductionOrder constructor")
)

const maxCodeLength = 64

// ProductionOrder is the aggregate root of a manufacturing order. Lines belong to it
// exclusively but are loaded through their own repository.
type ProductionOrder struct {
	id             kernel.UUID
	code           string
	details        Details
	serviceCurrent kernel.ServiceStage
	state          kernel.ProductionState

	// stateBeforeIssue is the state the order had when it was forced into issue.
	// UnknownState when the order is not in issue.
	stateBeforeIssue kernel.ProductionState

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewProductionOrder creates an order in the planning stage with state draft.
// The code is trimmed and must be non-empty.
func NewProductionOrder(id kernel.UUID, code string, details Details, now time.Time) (*ProductionOrder, error) {
	o := &ProductionOrder{
		details:        details.normalized(),
		serviceCurrent: kernel.StagePlanning,
		state:          kernel.StateDraft,
		createdAt:      now,
		updatedAt:      now,
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCode(code),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreProductionOrder rebuilds an order from persistence without applying
// creation defaults.
func RestoreProductionOrder(
	id kernel.UUID,
	code string,
	details Details,
	serviceCurrent kernel.ServiceStage,
	state kernel.ProductionState,
	stateBeforeIssue kernel.ProductionState,
	createdAt, updatedAt time.Time,
) (*ProductionOrder, error) {
	o := &ProductionOrder{
		details:          details,
		stateBeforeIssue: stateBeforeIssue,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
		isConstructed:    true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCode(code),
		serviceCurrent.Validate(),
		state.Validate(),
	); err != nil {
		return nil, err
	}
	o.serviceCurrent = serviceCurrent
	o.state = state

	return o, nil
}

func (o *ProductionOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrProductionOrderIsNotConstructed
	}
	return nil
}

func (o *ProductionOrder) IsEqual(other *ProductionOrder) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *ProductionOrder) ID() kernel.UUID {
	return o.id
}

func (o *ProductionOrder) Code() string {
	return o.code
}

func (o *ProductionOrder) Details() Details {
	return o.details
}

func (o *ProductionOrder) ServiceCurrent() kernel.ServiceStage {
	return o.serviceCurrent
}

func (o *ProductionOrder) State() kernel.ProductionState {
	return o.state
}

func (o *ProductionOrder) StateBeforeIssue() kernel.ProductionState {
	return o.stateBeforeIssue
}

func (o *ProductionOrder) CreatedAt() time.Time {
	return o.createdAt
}

func (o *ProductionOrder) UpdatedAt() time.Time {
	return o.updatedAt
}

// UpdateDetails replaces the editable header fields. The code is immutable.
func (o *ProductionOrder) UpdateDetails(details Details, now time.Time) {
	o.details = details.normalized()
	o.touch(now)
}

// OverrideStage sets the service stage without any guard.
func (o *ProductionOrder) OverrideStage(stage kernel.ServiceStage, now time.Time) error {
	if err := stage.Validate(); err != nil {
		return err
	}
	o.serviceCurrent = stage
	o.touch(now)
	return nil
}

// OverrideState sets the state administratively. Issue is owned by anomaly
// propagation, so it can be neither chosen nor left here.
func (o *ProductionOrder) OverrideState(state kernel.ProductionState, now time.Time) error {
	if err := state.Validate(); err != nil {
		return err
	}
	if state == kernel.StateIssue {
		return errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%s is managed by anomalies", state))
	}
	if o.state == kernel.StateIssue {
		return errs.NewBlockedError("production order", o.id.String())
	}
	o.state = state
	o.touch(now)
	return nil
}

// ForceIssue moves the order into issue and remembers the state it leaves.
// It reports whether the state changed.
func (o *ProductionOrder) ForceIssue(now time.Time) bool {
	if o.state == kernel.StateIssue {
		return false
	}
	o.stateBeforeIssue = o.state
	o.state = kernel.StateIssue
	o.touch(now)
	return true
}

// RestoreFromIssue lifts the order out of issue: in_production when it had already
// reached production before, draft otherwise. It reports whether the state changed.
func (o *ProductionOrder) RestoreFromIssue(now time.Time) bool {
	if o.state != kernel.StateIssue {
		return false
	}
	if o.stateBeforeIssue.HasReachedProduction() {
		o.state = kernel.StateInProduction
	} else {
		o.state = kernel.StateDraft
	}
	o.stateBeforeIssue = kernel.UnknownState
	o.touch(now)
	return true
}

// ApplyDerivedState stores a state computed from the order's lines. Entering issue goes
// through ForceIssue so the previous state is kept. It reports whether the state changed.
func (o *ProductionOrder) ApplyDerivedState(state kernel.ProductionState, now time.Time) (bool, error) {
	if err := state.Validate(); err != nil {
		return false, err
	}
	if state == o.state {
		return false, nil
	}
	if state == kernel.StateIssue {
		return o.ForceIssue(now), nil
	}
	o.state = state
	o.stateBeforeIssue = kernel.UnknownState
	o.touch(now)
	return true, nil
}

func (o *ProductionOrder) touch(now time.Time) {
	if now.After(o.updatedAt) {
		o.updatedAt = now
	}
}

func (o *ProductionOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *ProductionOrder) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	if len(code) > maxCodeLength {
		return errs.NewValueIsOutOfRangeError("code length", len(code), 1, maxCodeLength)
	}
	o.code = code
	return nil
}
