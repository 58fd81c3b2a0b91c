// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. TrackingEventRelayJob - drains the transactional outbox to the broker,
// one batch after another until a short batch comes back
// 2. OutboxPurgeJob - deletes relayed outbox messages past their retention
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayHandler, purgeHandler, cfg, logger)
//	if err := jobManager.StartAll(); err != nil {
//		logger.Fatal("failed to start jobs", zap.Error(err))
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the six-field cron syntax with seconds ("*/2 * * * * *") or
// descriptors such as "@every 2s". A run that is still going when the next
// tick fires causes that tick to be skipped.
//
// # Error Handling
//
// Failed runs are logged and retried on the next tick. A failed job start
// stops the jobs already started.
package jobs
