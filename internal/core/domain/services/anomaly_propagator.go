package services

import (
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/line"
	"production/internal/core/domain/model/order"
)

// Propagation is everything needed to bring one order back in line with its anomalies.
type Propagation struct {
	Order *order.ProductionOrder
	// Lines is the full line set of Order.
	Lines []*line.Line
	// AffectedLineIDs are the lines whose anomalies changed. Others are left untouched.
	AffectedLineIDs []kernel.UUID
	// BlockedLineIDs holds the lines that have an unresolved blocking anomaly.
	BlockedLineIDs map[kernel.UUID]bool
	// OrderBlocked is set when an unresolved blocking anomaly targets the order itself.
	OrderBlocked bool
	// KeepPastProduction stops a derived produced from replacing invoiced or shipped.
	KeepPastProduction bool
}

type PropagationResult struct {
	ChangedLines []*line.Line
	OrderChanged bool
}

func (r PropagationResult) HasChanges() bool {
	return r.OrderChanged || len(r.ChangedLines) > 0
}

type AnomalyPropagator interface {
	Propagate(p Propagation, now time.Time) (PropagationResult, error)
}

var _ AnomalyPropagator = &anomalyPropagator{}

type anomalyPropagator struct {
	deriver StateDeriver
}

func NewAnomalyPropagator(deriver StateDeriver) AnomalyPropagator {
	return &anomalyPropagator{deriver: deriver}
}

// Propagate forces affected lines into issue or lifts them out of it, then does the same
// for the order and finally re-derives the order state from its lines.
//
// A line leaving issue adopts the order state as it was before the order itself is
// reconsidered. An order leaving issue goes back to in_production if it had reached
// production, otherwise to draft. While the order has its own blocking anomaly,
// derivation cannot move it out of issue.
func (p *anomalyPropagator) Propagate(in Propagation, now time.Time) (PropagationResult, error) {
	var result PropagationResult
	if err := in.Order.Validate(); err != nil {
		return result, err
	}

	affected := make(map[kernel.UUID]bool, len(in.AffectedLineIDs))
	for _, id := range in.AffectedLineIDs {
		affected[id] = true
	}

	parentState := in.Order.State()
	changed := make(map[kernel.UUID]bool)
	for _, l := range in.Lines {
		if !affected[l.ID()] {
			continue
		}
		var lineChanged bool
		if in.BlockedLineIDs[l.ID()] {
			lineChanged = l.ForceIssue(now)
		} else {
			lineChanged = l.RestoreFromIssue(parentState, now)
		}
		if lineChanged && !changed[l.ID()] {
			changed[l.ID()] = true
			result.ChangedLines = append(result.ChangedLines, l)
		}
	}

	orderIssue := in.OrderBlocked
	for _, l := range in.Lines {
		if l.State() == kernel.StateIssue {
			orderIssue = true
			break
		}
	}

	if orderIssue {
		result.OrderChanged = in.Order.ForceIssue(now)
	} else {
		result.OrderChanged = in.Order.RestoreFromIssue(now)
	}

	derived, ok := p.deriver.Derive(in.Lines)
	if !ok || (in.OrderBlocked && derived != kernel.StateIssue) {
		return result, nil
	}
	if in.KeepPastProduction && derived == kernel.StateProduced && in.Order.State().IsPastProduction() {
		return result, nil
	}
	derivedChanged, err := in.Order.ApplyDerivedState(derived, now)
	if err != nil {
		return result, err
	}
	result.OrderChanged = result.OrderChanged || derivedChanged

	return result, nil
}
