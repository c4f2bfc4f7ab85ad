package jobs

import (
	"context"
	"log/slog"
	"time"

	"postal/internal/core/application/usecases/commands"
	"postal/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// AutoSealJob seals open batches that have aged past the policy threshold so
// a slow trickle of orders cannot hold a batch open forever.
type AutoSealJob struct {
	handler  commands.AutoSealCommandHandler
	policy   services.SealPolicy
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewAutoSealJob creates the seal sweep with the given seal policy and cron
// schedule (six-field spec, seconds first).
func NewAutoSealJob(
	handler commands.AutoSealCommandHandler,
	policy services.SealPolicy,
	schedule string,
	logger *slog.Logger,
) *AutoSealJob {
	return &AutoSealJob{
		handler:  handler,
		policy:   policy,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "auto_seal_job"),
	}
}

// Start begins the scheduled seal sweep.
func (j *AutoSealJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Auto-seal job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduled seal sweep.
func (j *AutoSealJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Auto-seal job stopped")
}

func (j *AutoSealJob) run() {
	ctx := context.Background()

	cmd, err := commands.NewAutoSealCommand(j.policy, time.Now().UTC())
	if err != nil {
		j.logger.ErrorContext(ctx, "Auto-seal sweep could not build its command", "error", err)
		return
	}

	sealed, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Auto-seal sweep failed", "error", err)
		return
	}

	if sealed > 0 {
		j.logger.InfoContext(ctx, "Auto-seal sweep sealed batches", "sealed", sealed)
	}
}
