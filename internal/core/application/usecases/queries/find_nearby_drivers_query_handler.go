package queries

import (
	"context"
	"database/sql"

	"parceltrack/internal/core/domain/model/driver"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FindNearbyDriversQueryHandler asks the geo index for candidates and keeps
// those the database still lists as available. The index is a best-effort
// mirror, so it is asked for more candidates than the caller wants. When the
// index fails, the available drivers are ranked from the database instead.
type FindNearbyDriversQueryHandler struct {
	db      *gorm.DB
	index   ports.DriverGeoIndex
	policy  services.AccessPolicy
	locator services.DriverLocator
	logger  *zap.Logger
}

// NewFindNearbyDriversQueryHandler creates a handler for proximity searches.
// Requires the database for availability checks and the geo index for candidates.
func NewFindNearbyDriversQueryHandler(
	db *gorm.DB,
	index ports.DriverGeoIndex,
	policy services.AccessPolicy,
	logger *zap.Logger,
) FindNearbyDriversQueryHandler {
	return FindNearbyDriversQueryHandler{
		db:      db,
		index:   index,
		policy:  policy,
		locator: services.NewDriverLocator(),
		logger:  logger.With(zap.String("component", "nearby_drivers")),
	}
}

// Handle returns up to Limit available drivers inside the radius, nearest first.
// Returns errs.ErrUnauthorized for callers other than controllers.
func (h FindNearbyDriversQueryHandler) Handle(
	ctx context.Context,
	query FindNearbyDriversQuery,
) ([]NearbyDriverView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := h.policy.Authorize(query.Actor(), services.ActionFindNearbyDrivers, services.Target{}); err != nil {
		return nil, err
	}

	candidates, err := h.index.Nearby(ctx, query.Center(), query.RadiusKm(), query.Limit()*nearbyOverfetchFactor)
	if err != nil {
		h.logger.Warn("geo index unavailable, ranking from database", zap.Error(err))
		return h.rankFromDatabase(ctx, query)
	}
	if len(candidates) == 0 {
		return []NearbyDriverView{}, nil
	}

	ids := make([]uuid.UUID, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.DriverID.Bytes())
	}

	type profile struct {
		username, name, vehicle string
	}
	profiles := make(map[uuid.UUID]profile, len(ids))

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.user_id,
			u.username,
			u.first_name,
			u.last_name,
			d.vehicle_details
		FROM drivers d
		JOIN users u ON u.id = d.user_id
		WHERE d.available AND d.user_id IN ?
	`, ids).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id                  uuid.UUID
			username            string
			firstName, lastName string
			vehicle             string
		)
		if err = rows.Scan(&id, &username, &firstName, &lastName, &vehicle); err != nil {
			return nil, err
		}
		profiles[id] = profile{
			username: username,
			name:     fullName(firstName, lastName, username),
			vehicle:  vehicle,
		}
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	result := make([]NearbyDriverView, 0, query.Limit())
	for _, c := range candidates {
		p, ok := profiles[c.DriverID.Bytes()]
		if !ok {
			continue
		}
		result = append(result, NearbyDriverView{
			ID:             c.DriverID,
			Username:       p.username,
			FullName:       p.name,
			VehicleDetails: p.vehicle,
			Location:       c.Location,
			DistanceKm:     c.DistanceKm,
		})
		if len(result) == query.Limit() {
			break
		}
	}

	return result, nil
}

func (h FindNearbyDriversQueryHandler) rankFromDatabase(
	ctx context.Context,
	query FindNearbyDriversQuery,
) ([]NearbyDriverView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.user_id,
			u.username,
			u.first_name,
			u.last_name,
			d.vehicle_details,
			d.latitude,
			d.longitude
		FROM drivers d
		JOIN users u ON u.id = d.user_id
		WHERE d.available AND d.latitude IS NOT NULL
		ORDER BY u.username
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		drivers []*driver.Driver
		views   = make(map[uuid.UUID]NearbyDriverView)
	)
	for rows.Next() {
		var (
			id                  uuid.UUID
			username            string
			firstName, lastName string
			vehicle             string
			lat, lon            sql.NullFloat64
		)
		if err = rows.Scan(&id, &username, &firstName, &lastName, &vehicle, &lat, &lon); err != nil {
			return nil, err
		}

		driverID, err := toKernelUUID(id)
		if err != nil {
			return nil, err
		}
		loc, err := toNullableLocation(lat, lon)
		if err != nil {
			return nil, err
		}
		d, err := driver.RestoreDriver(driverID, vehicle, loc, true)
		if err != nil {
			return nil, err
		}

		drivers = append(drivers, d)
		views[id] = NearbyDriverView{
			ID:             driverID,
			Username:       username,
			FullName:       fullName(firstName, lastName, username),
			VehicleDetails: vehicle,
		}
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	ranked, err := h.locator.Nearest(query.Center(), query.RadiusKm(), drivers, query.Limit())
	if err != nil {
		return nil, err
	}

	result := make([]NearbyDriverView, 0, len(ranked))
	for _, r := range ranked {
		v := views[r.Driver.UserID().Bytes()]
		v.Location = *r.Driver.Location()
		v.DistanceKm = r.DistanceKm
		result = append(result, v)
	}
	return result, nil
}
