package queries

import (
	"context"
	"database/sql"

	"parceltrack/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListDriversQueryHandler reads the driver roster for dispatching.
type ListDriversQueryHandler struct {
	db     *gorm.DB
	policy services.AccessPolicy
}

// NewListDriversQueryHandler creates a handler for the driver roster.
func NewListDriversQueryHandler(db *gorm.DB, policy services.AccessPolicy) ListDriversQueryHandler {
	return ListDriversQueryHandler{db: db, policy: policy}
}

// Handle returns the drivers ordered by username.
// Returns errs.ErrUnauthorized for callers other than controllers.
func (h ListDriversQueryHandler) Handle(ctx context.Context, query ListDriversQuery) ([]DriverView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := h.policy.Authorize(query.Actor(), services.ActionListDrivers, services.Target{}); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.user_id,
			u.username,
			u.first_name,
			u.last_name,
			u.phone_number,
			d.vehicle_details,
			d.latitude,
			d.longitude,
			d.available
		FROM drivers d
		JOIN users u ON u.id = d.user_id
		WHERE d.available OR NOT ?
		ORDER BY u.username
	`, query.AvailableOnly()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drivers := make([]DriverView, 0)
	for rows.Next() {
		var (
			d                   DriverView
			id                  uuid.UUID
			firstName, lastName string
			lat, lon            sql.NullFloat64
		)

		err = rows.Scan(&id, &d.Username, &firstName, &lastName, &d.PhoneNumber,
			&d.VehicleDetails, &lat, &lon, &d.Available)
		if err != nil {
			return nil, err
		}

		if d.ID, err = toKernelUUID(id); err != nil {
			return nil, err
		}
		if d.Location, err = toNullableLocation(lat, lon); err != nil {
			return nil, err
		}
		d.FullName = fullName(firstName, lastName, d.Username)

		drivers = append(drivers, d)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return drivers, nil
}
