package commands

import (
	"errors"
	"time"

	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

const minOutboxRetention = time.Hour

// ErrPurgePublishedOutboxCommandIsNotConstructed is returned when PurgePublishedOutboxCommand is not created via constructor.
var ErrPurgePublishedOutboxCommandIsNotConstructed = errors.New(
	"PurgePublishedOutboxCommand must be created via NewPurgePublishedOutboxCommand constructor",
)

// PurgePublishedOutboxCommand removes relayed outbox messages older than the
// retention period.
type PurgePublishedOutboxCommand struct {
	retention time.Duration

	guard guard.ConstructorGuard
}

// NewPurgePublishedOutboxCommand creates a purge command for messages
// published longer ago than retention. Retention must be positive.
func NewPurgePublishedOutboxCommand(retention time.Duration) (PurgePublishedOutboxCommand, error) {
	if retention < minOutboxRetention {
		return PurgePublishedOutboxCommand{}, errs.NewValueIsOutOfRangeError(
			"retention", retention, minOutboxRetention, "unbounded")
	}

	return PurgePublishedOutboxCommand{
		retention: retention,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPurgePublishedOutboxCommandIsNotConstructed if validation fails.
func (c PurgePublishedOutboxCommand) Validate() error {
	return c.guard.Validate(ErrPurgePublishedOutboxCommandIsNotConstructed)
}

// Retention returns how long published messages are kept.
func (c PurgePublishedOutboxCommand) Retention() time.Duration {
	return c.retention
}
