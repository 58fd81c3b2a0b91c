package jobs

import (
	"context"
	"time"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const maxBatchesPerRun = 20

type relayHandler interface {
	Handle(ctx context.Context, cmd commands.RelayTrackingEventsCommand) (int, error)
}

// TrackingEventRelayJob publishes outbox messages on a schedule.
type TrackingEventRelayJob struct {
	handler   relayHandler
	schedule  string
	batchSize int
	timeout   time.Duration
	cron      *cron.Cron
	logger    *zap.Logger
}

// NewTrackingEventRelayJob creates a new job for relaying tracking events.
// Uses RelayTrackingEventsCommandHandler on the given cron schedule.
func NewTrackingEventRelayJob(
	handler relayHandler,
	schedule string,
	batchSize int,
	logger *zap.Logger,
) *TrackingEventRelayJob {
	logger = logger.With(zap.String("component", "tracking_event_relay_job"))
	return &TrackingEventRelayJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		timeout:   30 * time.Second,
		cron:      newCron(logger),
		logger:    logger,
	}
}

// Start validates the batch size and schedules the relay.
func (j *TrackingEventRelayJob) Start() error {
	cmd, err := commands.NewRelayTrackingEventsCommand(j.batchSize)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(j.schedule, func() { j.run(cmd) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("tracking event relay job started",
		zap.String("schedule", j.schedule), zap.Int("batch_size", j.batchSize))
	return nil
}

// run relays full batches back to back, so a backlog drains within one
// tick up to maxBatchesPerRun batches.
func (j *TrackingEventRelayJob) run(cmd commands.RelayTrackingEventsCommand) int {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	total := 0

	var err error
	for range maxBatchesPerRun {
		var n int
		n, err = j.handler.Handle(ctx, cmd)
		total += n
		if err != nil || n < cmd.BatchSize() {
			break
		}
	}

	metrics.RecordRelayRun(total, err, time.Since(start))

	if err != nil {
		j.logger.Error("tracking event relay failed", zap.Int("published", total), zap.Error(err))
		return total
	}
	if total > 0 {
		j.logger.Debug("tracking events relayed", zap.Int("published", total))
	}
	return total
}

// Stop stops the relay job and waits for a running tick.
func (j *TrackingEventRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("tracking event relay job stopped")
}
