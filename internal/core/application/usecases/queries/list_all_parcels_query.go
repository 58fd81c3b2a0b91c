package queries

import (
	"errors"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// ErrListAllParcelsQueryIsNotConstructed is returned when ListAllParcelsQuery is not created via constructor.
var ErrListAllParcelsQueryIsNotConstructed = errors.New(
	"ListAllParcelsQuery must be created via NewListAllParcelsQuery constructor",
)

// ListAllParcelsQuery is the controller's view of every parcel, newest
// first, optionally narrowed to one status.
//
// Example:
//
//	query, err := NewListAllParcelsQuery(controller, "out_for_delivery", 20, 0)
type ListAllParcelsQuery struct {
	actor  user.Actor
	status parcel.Status
	limit  int
	offset int

	guard guard.ConstructorGuard
}

// NewListAllParcelsQuery accepts an empty status for no filter. A zero limit
// selects the default page size.
func NewListAllParcelsQuery(actor user.Actor, status string, limit, offset int) (ListAllParcelsQuery, error) {
	q := ListAllParcelsQuery{
		actor:  actor,
		limit:  limit,
		offset: offset,
		guard:  guard.NewConstructorGuard(),
	}

	if status != "" {
		s, err := parcel.ParseStatus(status)
		if err != nil {
			return ListAllParcelsQuery{}, err
		}
		q.status = s
	}

	if q.limit == 0 {
		q.limit = defaultPageSize
	}
	if q.limit < 1 || q.limit > maxPageSize {
		return ListAllParcelsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxPageSize)
	}
	if q.offset < 0 {
		return ListAllParcelsQuery{}, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrListAllParcelsQueryIsNotConstructed if validation fails.
func (q ListAllParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListAllParcelsQueryIsNotConstructed)
}

// Actor returns the controller listing parcels.
func (q ListAllParcelsQuery) Actor() user.Actor {
	return q.actor
}

// Status is parcel.StatusUnknown when no filter was given.
func (q ListAllParcelsQuery) Status() parcel.Status {
	return q.status
}

// Limit returns the page size.
func (q ListAllParcelsQuery) Limit() int {
	return q.limit
}

// Offset returns the number of parcels skipped.
func (q ListAllParcelsQuery) Offset() int {
	return q.offset
}
