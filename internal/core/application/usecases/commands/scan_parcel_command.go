package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
)

// ErrScanParcelCommandIsNotConstructed is returned when ScanParcelCommand is not created via constructor.
var ErrScanParcelCommandIsNotConstructed = errors.New(
	"ScanParcelCommand must be created via NewScanParcelCommand constructor",
)

// ScanParcelCommand represents the driver scanning the parcel at pickup.
type ScanParcelCommand struct {
	jobCommand
}

// NewScanParcelCommand creates a scan command for a pickup job.
// Returns a ValueIsRequired error if jobID is empty.
func NewScanParcelCommand(actor user.Actor, jobID kernel.UUID) (ScanParcelCommand, error) {
	c, err := newJobCommand(actor, jobID)
	if err != nil {
		return ScanParcelCommand{}, err
	}
	return ScanParcelCommand{jobCommand: c}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrScanParcelCommandIsNotConstructed if validation fails.
func (c ScanParcelCommand) Validate() error {
	return c.guard.Validate(ErrScanParcelCommandIsNotConstructed)
}
