package jobs

import (
	"context"
	"time"

	"parceltrack/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type purgeHandler interface {
	Handle(ctx context.Context, cmd commands.PurgePublishedOutboxCommand) (int64, error)
}

// OutboxPurgeJob deletes relayed outbox messages older than the retention.
type OutboxPurgeJob struct {
	handler   purgeHandler
	schedule  string
	retention time.Duration
	cron      *cron.Cron
	logger    *zap.Logger
}

// NewOutboxPurgeJob creates a new job for purging the outbox.
// Uses PurgePublishedOutboxCommandHandler on the given cron schedule.
func NewOutboxPurgeJob(
	handler purgeHandler,
	schedule string,
	retention time.Duration,
	logger *zap.Logger,
) *OutboxPurgeJob {
	logger = logger.With(zap.String("component", "outbox_purge_job"))
	return &OutboxPurgeJob{
		handler:   handler,
		schedule:  schedule,
		retention: retention,
		cron:      newCron(logger),
		logger:    logger,
	}
}

// Start validates the retention and schedules the purge.
func (j *OutboxPurgeJob) Start() error {
	cmd, err := commands.NewPurgePublishedOutboxCommand(j.retention)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(j.schedule, func() { j.run(cmd) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("outbox purge job started",
		zap.String("schedule", j.schedule), zap.Duration("retention", j.retention))
	return nil
}

func (j *OutboxPurgeJob) run(cmd commands.PurgePublishedOutboxCommand) {
	n, err := j.handler.Handle(context.Background(), cmd)
	if err != nil {
		j.logger.Error("outbox purge failed", zap.Error(err))
		return
	}
	if n > 0 {
		j.logger.Info("purged published outbox messages", zap.Int64("deleted", n))
	}
}

// Stop stops the outbox purge job.
func (j *OutboxPurgeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("outbox purge job stopped")
}
