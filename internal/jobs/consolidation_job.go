package jobs

import (
	"context"
	"log/slog"

	"postal/internal/core/application/usecases/commands"
	"postal/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// ConsolidationJob runs the ward sweep for every active consolidation route.
// A failing route is logged and skipped so one bad route cannot stall the
// sweep for a whole province.
type ConsolidationJob struct {
	activeRoutes queries.GetActiveConsolidationRoutesQueryHandler
	handler      commands.RunConsolidationCommandHandler
	schedule     string
	cron         *cron.Cron
	logger       *slog.Logger
}

// NewConsolidationJob creates the ward sweep with the given cron schedule
// (six-field spec, seconds first).
func NewConsolidationJob(
	activeRoutes queries.GetActiveConsolidationRoutesQueryHandler,
	handler commands.RunConsolidationCommandHandler,
	schedule string,
	logger *slog.Logger,
) *ConsolidationJob {
	return &ConsolidationJob{
		activeRoutes: activeRoutes,
		handler:      handler,
		schedule:     schedule,
		cron:         cron.New(cron.WithSeconds()),
		logger:       logger.With("component", "consolidation_job"),
	}
}

// Start begins the scheduled ward sweep.
func (j *ConsolidationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Consolidation job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduled ward sweep.
func (j *ConsolidationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Consolidation job stopped")
}

func (j *ConsolidationJob) run() {
	ctx := context.Background()

	routes, err := j.activeRoutes.Handle(ctx, queries.NewGetActiveConsolidationRoutesQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Consolidation sweep could not list active routes", "error", err)
		return
	}

	for _, route := range routes {
		cmd, err := commands.NewRunConsolidationCommand(route.ID)
		if err != nil {
			j.logger.ErrorContext(ctx, "Consolidation sweep skipped a route",
				"route_id", route.ID.String(), "route", route.Name, "error", err)
			continue
		}

		consolidated, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Consolidation sweep failed for a route",
				"route_id", route.ID.String(), "route", route.Name, "error", err)
			continue
		}

		if consolidated > 0 {
			j.logger.InfoContext(ctx, "Consolidation sweep moved orders",
				"route_id", route.ID.String(), "route", route.Name,
				"orders_consolidated", consolidated)
		}
	}
}
