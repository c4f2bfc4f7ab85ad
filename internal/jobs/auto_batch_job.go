package jobs

import (
	"context"
	"log/slog"

	"postal/internal/core/application/usecases/commands"
	"postal/internal/core/application/usecases/queries"
	"postal/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// AutoBatchJob runs the batching sweep on a schedule. Each run finds every
// origin/destination pair with unbatched waiting orders and asks the planner
// to place them. A failing pair is logged and skipped; the remaining pairs
// still run, and the next cycle naturally retries by re-reading current state.
type AutoBatchJob struct {
	pendingPairs queries.GetPendingOfficePairsQueryHandler
	handler      commands.AutoBatchCommandHandler
	policy       services.CapacityPolicy
	schedule     string
	cron         *cron.Cron
	logger       *slog.Logger
}

// NewAutoBatchJob creates the batching sweep with the given capacity policy
// and cron schedule (six-field spec, seconds first).
func NewAutoBatchJob(
	pendingPairs queries.GetPendingOfficePairsQueryHandler,
	handler commands.AutoBatchCommandHandler,
	policy services.CapacityPolicy,
	schedule string,
	logger *slog.Logger,
) *AutoBatchJob {
	return &AutoBatchJob{
		pendingPairs: pendingPairs,
		handler:      handler,
		policy:       policy,
		schedule:     schedule,
		cron:         cron.New(cron.WithSeconds()),
		logger:       logger.With("component", "auto_batch_job"),
	}
}

// Start begins the scheduled batching sweep.
func (j *AutoBatchJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Auto-batch job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduled batching sweep.
func (j *AutoBatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Auto-batch job stopped")
}

func (j *AutoBatchJob) run() {
	ctx := context.Background()

	pairs, err := j.pendingPairs.Handle(ctx, queries.NewGetPendingOfficePairsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Auto-batch sweep could not list pending pairs", "error", err)
		return
	}

	for _, pair := range pairs {
		cmd, err := commands.NewAutoBatchCommand(pair.OriginOfficeID, pair.DestinationOfficeID, j.policy)
		if err != nil {
			j.logger.ErrorContext(ctx, "Auto-batch sweep skipped a pair",
				"origin_office_id", pair.OriginOfficeID.String(),
				"destination_office_id", pair.DestinationOfficeID.String(),
				"error", err)
			continue
		}

		result, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Auto-batch sweep failed for a pair",
				"origin_office_id", pair.OriginOfficeID.String(),
				"destination_office_id", pair.DestinationOfficeID.String(),
				"error", err)
			continue
		}

		if result.OrdersAdded > 0 || result.OrdersSkipped > 0 {
			j.logger.InfoContext(ctx, "Auto-batch sweep placed orders",
				"origin_office_id", pair.OriginOfficeID.String(),
				"destination_office_id", pair.DestinationOfficeID.String(),
				"orders_added", result.OrdersAdded,
				"orders_skipped", result.OrdersSkipped,
				"new_batches", len(result.NewBatches))
		}
	}
}
