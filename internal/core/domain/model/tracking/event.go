package tracking

import (
	"errors"
	"slices"
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ErrEventIsNotConstructed is returned when an Event is not created via constructor.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent constructor")

// Event is one append-only entry of a parcel's audit trail.
type Event struct {
	id         kernel.UUID
	parcelID   kernel.UUID
	occurredAt time.Time
	label      string
	notes      string
	location   string
	proofRefs  []string
	recordedBy *kernel.UUID
	guard      guard.ConstructorGuard
}

// Option sets an optional attribute of a new event.
type Option func(*Event)

// WithLocation attaches a free-text location such as a depot name.
func WithLocation(location string) Option {
	return func(e *Event) {
		e.location = strings.TrimSpace(location)
	}
}

// WithProofRefs attaches opaque references to proof artifacts (photo,
// signature). Empty references are dropped.
func WithProofRefs(refs ...string) Option {
	return func(e *Event) {
		for _, ref := range refs {
			if ref = strings.TrimSpace(ref); ref != "" {
				e.proofRefs = append(e.proofRefs, ref)
			}
		}
	}
}

// NewEvent creates an event. recordedBy is nil for system generated entries.
func NewEvent(
	parcelID kernel.UUID,
	occurredAt time.Time,
	label, notes string,
	recordedBy *kernel.UUID,
	opts ...Option,
) (*Event, error) {
	e, err := RestoreEvent(kernel.NewUUID(), parcelID, occurredAt, label, notes, "", nil, recordedBy)
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// RestoreEvent rebuilds an event loaded from storage.
func RestoreEvent(
	id, parcelID kernel.UUID,
	occurredAt time.Time,
	label, notes, location string,
	proofRefs []string,
	recordedBy *kernel.UUID,
) (*Event, error) {
	label = strings.TrimSpace(label)

	var labelErr error
	if label == "" {
		labelErr = errs.NewValueIsRequiredError("status label")
	}
	var recorderErr error
	if recordedBy != nil {
		recorderErr = recordedBy.Validate()
	}
	var timeErr error
	if occurredAt.IsZero() {
		timeErr = errs.NewValueIsRequiredError("timestamp")
	}

	if err := errors.Join(id.Validate(), parcelID.Validate(), labelErr, recorderErr, timeErr); err != nil {
		return nil, err
	}

	return &Event{
		id:         id,
		parcelID:   parcelID,
		occurredAt: occurredAt,
		label:      label,
		notes:      strings.TrimSpace(notes),
		location:   strings.TrimSpace(location),
		proofRefs:  slices.Clone(proofRefs),
		recordedBy: recordedBy,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the event was created through a constructor.
// Returns ErrEventIsNotConstructed if validation fails.
func (e *Event) Validate() error {
	if e == nil {
		return ErrEventIsNotConstructed
	}
	return e.guard.Validate(ErrEventIsNotConstructed)
}

// ID returns the unique identifier of the event.
func (e *Event) ID() kernel.UUID {
	return e.id
}

// ParcelID returns the parcel the event belongs to.
func (e *Event) ParcelID() kernel.UUID {
	return e.parcelID
}

// OccurredAt returns the event time, never earlier than the previous event of the parcel.
func (e *Event) OccurredAt() time.Time {
	return e.occurredAt
}

// Label is the status text shown in the tracking history.
func (e *Event) Label() string {
	return e.label
}

// Notes returns the free-text notes.
func (e *Event) Notes() string {
	return e.notes
}

// Location returns the free-text location, if any.
func (e *Event) Location() string {
	return e.location
}

// ProofRefs returns the attached proof references.
func (e *Event) ProofRefs() []string {
	return slices.Clone(e.proofRefs)
}

// RecordedBy returns the acting user, or nil for system entries.
func (e *Event) RecordedBy() *kernel.UUID {
	return e.recordedBy
}
