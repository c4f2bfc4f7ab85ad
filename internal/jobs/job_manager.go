package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	autoBatchJob     *AutoBatchJob
	autoSealJob      *AutoSealJob
	consolidationJob *ConsolidationJob
}

// NewJobManager creates a new job manager over the three sweeps.
func NewJobManager(
	autoBatchJob *AutoBatchJob,
	autoSealJob *AutoSealJob,
	consolidationJob *ConsolidationJob,
) *JobManager {
	return &JobManager{
		autoBatchJob:     autoBatchJob,
		autoSealJob:      autoSealJob,
		consolidationJob: consolidationJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.autoBatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start auto-batch job: %w", err)
	}

	if err := jm.autoSealJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.autoBatchJob.Stop()
		return fmt.Errorf("failed to start auto-seal job: %w", err)
	}

	if err := jm.consolidationJob.Start(); err != nil {
		jm.autoSealJob.Stop()
		jm.autoBatchJob.Stop()
		return fmt.Errorf("failed to start consolidation job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.consolidationJob.Stop()
	jm.autoSealJob.Stop()
	jm.autoBatchJob.Stop()
}
