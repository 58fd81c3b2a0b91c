package queries

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/job"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/guard"
)

// ErrListDriverJobsQueryIsNotConstructed is returned when ListDriverJobsQuery is not created via constructor.
var ErrListDriverJobsQueryIsNotConstructed = errors.New(
	"ListDriverJobsQuery must be created via NewListDriverJobsQuery constructor",
)

// ListDriverJobsQuery lists the calling driver's jobs, newest assignment
// first. openOnly keeps assigned, accepted and en-route jobs.
type ListDriverJobsQuery struct {
	actor    user.Actor
	openOnly bool

	guard guard.ConstructorGuard
}

// NewListDriverJobsQuery creates a query for the caller's jobs.
func NewListDriverJobsQuery(actor user.Actor, openOnly bool) ListDriverJobsQuery {
	return ListDriverJobsQuery{
		actor:    actor,
		openOnly: openOnly,
		guard:    guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
// Returns ErrListDriverJobsQueryIsNotConstructed if validation fails.
func (q ListDriverJobsQuery) Validate() error {
	return q.guard.Validate(ErrListDriverJobsQueryIsNotConstructed)
}

// Actor returns the driver whose jobs are listed.
func (q ListDriverJobsQuery) Actor() user.Actor {
	return q.actor
}

// OpenOnly reports whether closed jobs are left out.
func (q ListDriverJobsQuery) OpenOnly() bool {
	return q.openOnly
}

// JobView is a job joined with the parcel fields a driver needs on the road.
type JobView struct {
	ID                   kernel.UUID
	ParcelID             kernel.UUID
	TrackingCode         string
	Type                 job.Type
	Status               job.Status
	ParcelStatus         parcel.Status
	PickupAddress        string
	DeliveryAddress      string
	RecipientName        string
	RecipientPhone       string
	DeliveryInstructions string
	AssignedAt           time.Time
	AcceptedAt           *time.Time
	CompletedAt          *time.Time
	Notes                string
}
