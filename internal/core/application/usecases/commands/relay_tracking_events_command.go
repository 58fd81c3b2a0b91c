package commands

import (
	"errors"

	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

const maxRelayBatchSize = 1000

// ErrRelayTrackingEventsCommandIsNotConstructed is returned when RelayTrackingEventsCommand is not created via constructor.
var ErrRelayTrackingEventsCommandIsNotConstructed = errors.New(
	"RelayTrackingEventsCommand must be created via NewRelayTrackingEventsCommand constructor",
)

// RelayTrackingEventsCommand represents one relay run over the outbox.
type RelayTrackingEventsCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

// NewRelayTrackingEventsCommand creates a relay command.
// Returns a ValueIsOutOfRange error unless batchSize is between 1 and 1000.
func NewRelayTrackingEventsCommand(batchSize int) (RelayTrackingEventsCommand, error) {
	if batchSize <= 0 || batchSize > maxRelayBatchSize {
		return RelayTrackingEventsCommand{}, errs.NewValueIsOutOfRangeError("batch_size", batchSize, 1, maxRelayBatchSize)
	}

	return RelayTrackingEventsCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRelayTrackingEventsCommandIsNotConstructed if validation fails.
func (c RelayTrackingEventsCommand) Validate() error {
	return c.guard.Validate(ErrRelayTrackingEventsCommandIsNotConstructed)
}

// BatchSize returns the maximum number of messages relayed in one run.
func (c RelayTrackingEventsCommand) BatchSize() int {
	return c.batchSize
}
