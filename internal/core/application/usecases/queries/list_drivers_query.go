package queries

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/guard"
)

// ErrListDriversQueryIsNotConstructed is returned when ListDriversQuery is not created via constructor.
var ErrListDriversQueryIsNotConstructed = errors.New(
	"ListDriversQuery must be created via NewListDriversQuery constructor",
)

// ListDriversQuery lists every driver profile for dispatching, ordered by
// username. availableOnly drops drivers marked unavailable.
type ListDriversQuery struct {
	actor         user.Actor
	availableOnly bool

	guard guard.ConstructorGuard
}

// NewListDriversQuery creates a query for the driver roster.
func NewListDriversQuery(actor user.Actor, availableOnly bool) ListDriversQuery {
	return ListDriversQuery{
		actor:         actor,
		availableOnly: availableOnly,
		guard:         guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
// Returns ErrListDriversQueryIsNotConstructed if validation fails.
func (q ListDriversQuery) Validate() error {
	return q.guard.Validate(ErrListDriversQueryIsNotConstructed)
}

// Actor returns the controller reading the roster.
func (q ListDriversQuery) Actor() user.Actor {
	return q.actor
}

// AvailableOnly reports whether unavailable drivers are left out.
func (q ListDriversQuery) AvailableOnly() bool {
	return q.availableOnly
}

// DriverView is a driver profile joined with its user account.
type DriverView struct {
	ID             kernel.UUID
	Username       string
	FullName       string
	PhoneNumber    string
	VehicleDetails string
	Location       *kernel.Location
	Available      bool
}
