package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates the scheduled jobs of the application.
type JobManager struct {
	reconciliationJob *StateReconciliationJob
}

// NewJobManager creates the job manager. An empty reconcileSchedule disables the
// reconciliation job.
func NewJobManager(reconciler OrdersReconciler, reconcileSchedule string, logger *slog.Logger) *JobManager {
	jm := &JobManager{}
	if reconcileSchedule != "" {
		jm.reconciliationJob = NewStateReconciliationJob(reconciler, reconcileSchedule, logger)
	}
	return jm
}

// StartAll starts all configured jobs.
func (jm *JobManager) StartAll() error {
	if jm.reconciliationJob == nil {
		return nil
	}
	if err := jm.reconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start state reconciliation job: %w", err)
	}
	return nil
}

// StopAll stops all jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.reconciliationJob != nil {
		jm.reconciliationJob.Stop()
	}
}
