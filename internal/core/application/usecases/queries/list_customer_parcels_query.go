package queries

import (
	"errors"

	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/guard"
)

// ErrListCustomerParcelsQueryIsNotConstructed is returned when ListCustomerParcelsQuery is not created via constructor.
var ErrListCustomerParcelsQueryIsNotConstructed = errors.New(
	"ListCustomerParcelsQuery must be created via NewListCustomerParcelsQuery constructor",
)

// ListCustomerParcelsQuery lists the parcels booked by the calling customer,
// newest first.
type ListCustomerParcelsQuery struct {
	actor user.Actor
	guard guard.ConstructorGuard
}

// NewListCustomerParcelsQuery creates a query for the caller's own parcels.
func NewListCustomerParcelsQuery(actor user.Actor) ListCustomerParcelsQuery {
	return ListCustomerParcelsQuery{actor: actor, guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrListCustomerParcelsQueryIsNotConstructed if validation fails.
func (q ListCustomerParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListCustomerParcelsQueryIsNotConstructed)
}

// Actor returns the customer whose parcels are listed.
func (q ListCustomerParcelsQuery) Actor() user.Actor {
	return q.actor
}
