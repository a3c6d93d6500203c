package commands

import (
	"context"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/line"
	"production/internal/core/domain/services"
	"production/internal/core/ports"
)

// reconciler re-applies anomaly propagation and state derivation to the orders touched
// by a command, inside the command's unit of work.
type reconciler struct {
	propagator services.AnomalyPropagator
	// keepPastProduction leaves invoiced and shipped orders alone when their lines
	// derive to produced.
	keepPastProduction bool
}

func newReconciler(propagator services.AnomalyPropagator) reconciler {
	return reconciler{propagator: propagator}
}

// reconcile propagates anomalies for affectedLines and re-derives every order in orderIDs.
// Lines outside orderIDs are ignored. It returns the number of orders whose state or
// lines changed.
func (r reconciler) reconcile(
	ctx context.Context,
	uow UoW,
	affectedLines []kernel.UUID,
	orderIDs []kernel.UUID,
	now time.Time,
) (int, error) {
	orderRepo := uow.ProductionOrderRepository()
	lineRepo := uow.LineRepository()
	anomalyRepo := uow.AnomalyRepository()

	corrected := 0
	for _, orderID := range kernel.UniqueUUIDs(orderIDs...) {
		o, err := orderRepo.Get(ctx, orderID)
		if err != nil {
			return corrected, err
		}

		lines, err := lineRepo.ListByOrder(ctx, orderID)
		if err != nil {
			return corrected, err
		}

		blocked, err := anomalyRepo.BlockedLineIDs(ctx, orderID)
		if err != nil {
			return corrected, err
		}

		orderBlocked, err := anomalyRepo.HasBlockingForOrder(ctx, orderID)
		if err != nil {
			return corrected, err
		}

		result, err := r.propagator.Propagate(services.Propagation{
			Order:              o,
			Lines:              lines,
			AffectedLineIDs:    affectedLines,
			BlockedLineIDs:     toSet(blocked),
			OrderBlocked:       orderBlocked,
			KeepPastProduction: r.keepPastProduction,
		}, now)
		if err != nil {
			return corrected, err
		}

		if err = saveLines(ctx, lineRepo, result.ChangedLines); err != nil {
			return corrected, err
		}
		if result.OrderChanged {
			if err = orderRepo.Update(ctx, o); err != nil {
				return corrected, err
			}
		}
		if result.HasChanges() {
			corrected++
		}
	}

	return corrected, nil
}

func saveLines(ctx context.Context, repo ports.LineRepository, lines []*line.Line) error {
	for _, l := range lines {
		if err := repo.Update(ctx, l); err != nil {
			return err
		}
	}
	return nil
}

func toSet(ids []kernel.UUID) map[kernel.UUID]bool {
	set := make(map[kernel.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
