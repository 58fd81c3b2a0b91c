package queries

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

const (
	maxNearbyRadiusKm     = 100.0
	defaultNearbyLimit    = 10
	maxNearbyLimit        = 50
	nearbyOverfetchFactor = 3
)

// ErrFindNearbyDriversQueryIsNotConstructed is returned when FindNearbyDriversQuery is not created via constructor.
var ErrFindNearbyDriversQueryIsNotConstructed = errors.New(
	"FindNearbyDriversQuery must be created via NewFindNearbyDriversQuery constructor",
)

// FindNearbyDriversQuery searches available drivers around a point, nearest
// first.
//
// Example:
//
//	query, err := NewFindNearbyDriversQuery(controller, 52.52, 13.405, 5, 0)
//	drivers, err := handler.Handle(ctx, query)
type FindNearbyDriversQuery struct {
	actor    user.Actor
	center   kernel.Location
	radiusKm float64
	limit    int

	guard guard.ConstructorGuard
}

// NewFindNearbyDriversQuery validates the center and radius. A zero limit
// selects the default.
func NewFindNearbyDriversQuery(
	actor user.Actor,
	latitude, longitude, radiusKm float64,
	limit int,
) (FindNearbyDriversQuery, error) {
	center, err := kernel.NewLocation(latitude, longitude)
	if err != nil {
		return FindNearbyDriversQuery{}, err
	}

	if radiusKm <= 0 || radiusKm > maxNearbyRadiusKm {
		return FindNearbyDriversQuery{}, errs.NewValueIsOutOfRangeError("radius_km", radiusKm, 0, maxNearbyRadiusKm)
	}

	if limit == 0 {
		limit = defaultNearbyLimit
	}
	if limit < 1 || limit > maxNearbyLimit {
		return FindNearbyDriversQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxNearbyLimit)
	}

	return FindNearbyDriversQuery{
		actor:    actor,
		center:   center,
		radiusKm: radiusKm,
		limit:    limit,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrFindNearbyDriversQueryIsNotConstructed if validation fails.
func (q FindNearbyDriversQuery) Validate() error {
	return q.guard.Validate(ErrFindNearbyDriversQueryIsNotConstructed)
}

// Actor returns the controller running the search.
func (q FindNearbyDriversQuery) Actor() user.Actor {
	return q.actor
}

// Center returns the point the search is centred on.
func (q FindNearbyDriversQuery) Center() kernel.Location {
	return q.center
}

// RadiusKm returns the search radius in kilometres.
func (q FindNearbyDriversQuery) RadiusKm() float64 {
	return q.radiusKm
}

// Limit returns the maximum number of drivers returned.
func (q FindNearbyDriversQuery) Limit() int {
	return q.limit
}

// NearbyDriverView is an available driver with its distance from the search center.
type NearbyDriverView struct {
	ID             kernel.UUID
	Username       string
	FullName       string
	VehicleDetails string
	Location       kernel.Location
	DistanceKm     float64
}
