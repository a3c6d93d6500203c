package jobs

import (
	"context"
	"log/slog"

	"production/internal/core/application/usecases/commands"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron/v3"
)

var (
	reconciliationRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "production",
		Subsystem: "reconciliation",
		Name:      "runs_total",
		Help:      "Total number of scheduled reconciliation runs broken down by result.",
	}, []string{"result"})

	reconciliationCorrected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "production",
		Subsystem: "reconciliation",
		Name:      "corrected_orders_total",
		Help:      "Total number of production orders whose lines or state were corrected.",
	})
)

// OrdersReconciler re-runs anomaly propagation and state derivation over production orders.
type OrdersReconciler interface {
	Handle(ctx context.Context, cmd commands.ReconcileOrdersCommand) (commands.ReconcileResult, error)
}

// StateReconciliationJob periodically reconciles every production order so that drift
// left by manual database edits or failed deployments is repaired.
type StateReconciliationJob struct {
	handler  OrdersReconciler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStateReconciliationJob accepts any robfig/cron spec, including descriptors such as
// "@every 10m".
func NewStateReconciliationJob(handler OrdersReconciler, schedule string, logger *slog.Logger) *StateReconciliationJob {
	return &StateReconciliationJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "state_reconciliation_job"),
	}
}

// Start registers the job with its schedule and starts the scheduler.
func (j *StateReconciliationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		_ = j.RunOnce(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "State reconciliation job started", "schedule", j.schedule)
	return nil
}

// RunOnce reconciles all orders and records the outcome.
func (j *StateReconciliationJob) RunOnce(ctx context.Context) error {
	cmd, err := commands.NewReconcileOrdersCommand(nil)
	if err != nil {
		return err
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		reconciliationRuns.WithLabelValues("error").Inc()
		j.logger.ErrorContext(ctx, "State reconciliation job failed", "error", err)
		return err
	}

	reconciliationRuns.WithLabelValues("ok").Inc()
	reconciliationCorrected.Add(float64(result.Corrected))
	if result.Corrected > 0 {
		j.logger.WarnContext(ctx, "State reconciliation corrected orders",
			"checked", result.Checked,
			"corrected", result.Corrected,
		)
	}
	return nil
}

// Stop stops the scheduler and waits for a running reconciliation to finish.
func (j *StateReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "State reconciliation job stopped")
}
