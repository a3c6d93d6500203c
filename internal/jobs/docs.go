// Package jobs provides scheduled background tasks for the production service.
//
// Jobs are built on github.com/robfig/cron/v3 and log through log/slog.
//
// # Available Jobs
//
// StateReconciliationJob re-runs anomaly propagation and state derivation over every
// production order on the RECONCILE_SCHEDULE cron spec and counts corrected orders in
// the production_reconciliation_corrected_orders_total metric.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(reconcileHandler, "@every 10m", logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and counted; the next scheduled run starts from scratch.
package jobs
