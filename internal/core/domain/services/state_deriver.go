package services

import (
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/line"
)

type StateDeriver interface {
	Derive(lines []*line.Line) (kernel.ProductionState, bool)
}

var _ StateDeriver = &stateDeriver{}

type stateDeriver struct{}

func NewStateDeriver() StateDeriver {
	return &stateDeriver{}
}

// Derive computes an order state from scratch out of its lines. It returns false for an
// empty line set, meaning the order keeps its current state.
//
// In order of precedence: any line in issue gives issue, all lines produced give
// produced, any line past planning gives in_production, otherwise planned.
func (d *stateDeriver) Derive(lines []*line.Line) (kernel.ProductionState, bool) {
	if len(lines) == 0 {
		return kernel.UnknownState, false
	}

	allProduced := true
	started := false
	for _, l := range lines {
		if l.State() == kernel.StateIssue {
			return kernel.StateIssue, true
		}
		if l.State() != kernel.StateProduced {
			allProduced = false
		}
		if l.ServiceCurrent() != kernel.StagePlanning {
			started = true
		}
	}

	switch {
	case allProduced:
		return kernel.StateProduced, true
	case started:
		return kernel.StateInProduction, true
	default:
		return kernel.StatePlanned, true
	}
}
