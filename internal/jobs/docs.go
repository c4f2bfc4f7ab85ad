// Package jobs provides scheduled background tasks for the postal batching core.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to drive the periodic sweeps the batching pipeline needs.
//
// # Available Jobs
//
// 1. AutoBatchJob - Runs the planner over every origin/destination pair with unbatched waiting orders
// 2. AutoSealJob - Seals open batches that have aged past the seal-policy threshold
// 3. ConsolidationJob - Runs the ward sweep for every active consolidation route
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with the three sweeps
//	jobManager := jobs.NewJobManager(autoBatchJob, autoSealJob, consolidationJob)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are six-field cron expressions (seconds first) supplied by
// configuration, so deployments can tune sweep frequency without a rebuild.
//
// # Error Handling
//
// - Sweeps isolate per-pair and per-route failures: the failing unit is logged and skipped, the rest of the cycle continues
// - A failed cycle is retried implicitly: the next cycle re-reads current state
// - Failed job starts will stop any already running jobs
package jobs
