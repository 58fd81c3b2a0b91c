package commands

import (
	"errors"
	"fmt"
	"strings"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
)

const maxProofRefs = 10

// ErrCompleteDeliveryCommandIsNotConstructed is returned when CompleteDeliveryCommand is not created via constructor.
var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand represents a driver confirming the hand-over to the recipient.
type CompleteDeliveryCommand struct {
	jobCommand
	notes     string
	proofRefs []string
}

// NewCompleteDeliveryCommand accepts up to ten proof references (object
// keys of delivery photos or signatures stored elsewhere).
func NewCompleteDeliveryCommand(
	actor user.Actor,
	jobID kernel.UUID,
	notes string,
	proofRefs []string,
) (CompleteDeliveryCommand, error) {
	c, err := newJobCommand(actor, jobID)
	if err != nil {
		return CompleteDeliveryCommand{}, err
	}

	refs := make([]string, 0, len(proofRefs))
	for _, ref := range proofRefs {
		if ref = strings.TrimSpace(ref); ref != "" {
			refs = append(refs, ref)
		}
	}
	if len(refs) > maxProofRefs {
		return CompleteDeliveryCommand{}, errs.NewValueIsOutOfRangeErrorWithCause(
			"proof_refs", len(refs), 0, maxProofRefs, fmt.Errorf("too many proof references"))
	}

	return CompleteDeliveryCommand{
		jobCommand: c,
		notes:      strings.TrimSpace(notes),
		proofRefs:  refs,
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCompleteDeliveryCommandIsNotConstructed if validation fails.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

// Notes returns the driver's delivery notes.
func (c CompleteDeliveryCommand) Notes() string {
	return c.notes
}

// ProofRefs returns the non-empty proof references.
func (c CompleteDeliveryCommand) ProofRefs() []string {
	return c.proofRefs
}
