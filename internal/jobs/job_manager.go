package jobs

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Config carries the schedules of the background jobs.
type Config struct {
	RelaySchedule   string
	RelayBatchSize  int
	PurgeSchedule   string
	OutboxRetention time.Duration
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	relayJob *TrackingEventRelayJob
	purgeJob *OutboxPurgeJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	relay relayHandler,
	purge purgeHandler,
	cfg Config,
	logger *zap.Logger,
) *JobManager {
	return &JobManager{
		relayJob: NewTrackingEventRelayJob(relay, cfg.RelaySchedule, cfg.RelayBatchSize, logger),
		purgeJob: NewOutboxPurgeJob(purge, cfg.PurgeSchedule, cfg.OutboxRetention, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.relayJob.Start(); err != nil {
		return fmt.Errorf("failed to start tracking event relay job: %w", err)
	}

	if err := jm.purgeJob.Start(); err != nil {
		jm.relayJob.Stop()
		return fmt.Errorf("failed to start outbox purge job: %w", err)
	}

	return nil
}

// StopAll stops the jobs and waits for running ticks to finish.
func (jm *JobManager) StopAll() {
	jm.purgeJob.Stop()
	jm.relayJob.Stop()
}
