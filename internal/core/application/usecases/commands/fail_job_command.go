package commands

import (
	"errors"
	"strings"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
)

// ErrFailJobCommandIsNotConstructed is returned when FailJobCommand is not created via constructor.
var ErrFailJobCommandIsNotConstructed = errors.New(
	"FailJobCommand must be created via NewFailJobCommand constructor",
)

// FailJobCommand represents a driver or controller abandoning a job.
type FailJobCommand struct {
	jobCommand
	reason string
}

// NewFailJobCommand creates a command for failing a job with a reason.
func NewFailJobCommand(actor user.Actor, jobID kernel.UUID, reason string) (FailJobCommand, error) {
	c, err := newJobCommand(actor, jobID)
	if err != nil {
		return FailJobCommand{}, err
	}
	return FailJobCommand{jobCommand: c, reason: strings.TrimSpace(reason)}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrFailJobCommandIsNotConstructed if validation fails.
func (c FailJobCommand) Validate() error {
	return c.guard.Validate(ErrFailJobCommandIsNotConstructed)
}

// Reason returns why the job was abandoned.
func (c FailJobCommand) Reason() string {
	return c.reason
}
