package kernel

import (
	"fmt"

	"production/internal/pkg/errs"
)

// ProductionState is the lifecycle status of a production order or line, distinct from
// its ServiceStage. Issue is never chosen by callers; it is forced and lifted by anomaly
// propagation.
type ProductionState int

const (
	UnknownState ProductionState = iota
	StateDraft
	StatePlanned
	StateInProduction
	StateIssue
	StateProduced
	StateInvoiced
	StateShipped
)

var productionStateNames = map[ProductionState]string{
	StateDraft:        "draft",
	StatePlanned:      "planned",
	StateInProduction: "in_production",
	StateIssue:        "issue",
	StateProduced:     "produced",
	StateInvoiced:     "invoiced",
	StateShipped:      "shipped",
}

// ParseProductionState maps the persisted/transport name to a ProductionState.
func ParseProductionState(s string) (ProductionState, error) {
	for state, name := range productionStateNames {
		if name == s {
			return state, nil
		}
	}
	return UnknownState, errs.NewValueIsInvalidErrorWithCause(
		"state",
		fmt.Errorf("%q is not a valid production state", s),
	)
}

// ProductionStateFromInput parses a caller-supplied state; issue is anomaly-managed and rejected.
func ProductionStateFromInput(s string) (ProductionState, error) {
	state, err := ParseProductionState(s)
	if err != nil {
		return UnknownState, err
	}
	if state == StateIssue {
		return UnknownState, errs.NewValueIsInvalidErrorWithCause(
			"state",
			fmt.Errorf("%q is managed by anomalies and cannot be set directly", s),
		)
	}
	return state, nil
}

func (s ProductionState) String() string {
	if name, ok := productionStateNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s ProductionState) Validate() error {
	if _, ok := productionStateNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("state is invalid", fmt.Errorf("%d is not a valid production state", s))
	}
	return nil
}

// HasReachedProduction reports produced, invoiced or shipped.
func (s ProductionState) HasReachedProduction() bool {
	return s == StateProduced || s == StateInvoiced || s == StateShipped
}

// IsPastProduction reports invoiced or shipped, the commercial states that follow produced.
func (s ProductionState) IsPastProduction() bool {
	return s == StateInvoiced || s == StateShipped
}
