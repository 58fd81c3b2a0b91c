package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
)

// ErrAcceptJobCommandIsNotConstructed is returned when AcceptJobCommand is not created via constructor.
var ErrAcceptJobCommandIsNotConstructed = errors.New(
	"AcceptJobCommand must be created via NewAcceptJobCommand constructor",
)

// AcceptJobCommand represents a driver confirming an assigned job.
type AcceptJobCommand struct {
	jobCommand
}

// NewAcceptJobCommand creates a command for accepting a job.
// Returns a ValueIsRequired error if jobID is empty.
func NewAcceptJobCommand(actor user.Actor, jobID kernel.UUID) (AcceptJobCommand, error) {
	c, err := newJobCommand(actor, jobID)
	if err != nil {
		return AcceptJobCommand{}, err
	}
	return AcceptJobCommand{jobCommand: c}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAcceptJobCommandIsNotConstructed if validation fails.
func (c AcceptJobCommand) Validate() error {
	return c.guard.Validate(ErrAcceptJobCommandIsNotConstructed)
}
