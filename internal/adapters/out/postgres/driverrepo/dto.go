// Package driverrepo persists driver profiles.
package driverrepo

import (
	"parceltrack/internal/core/domain/model/driver"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO is the row of the drivers table. Latitude and longitude are
// both null until the first location update.
type DriverDTO struct {
	UserID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	VehicleDetails string    `gorm:"type:text;not null"`
	Latitude       *float64  `gorm:"type:double precision"`
	Longitude      *float64  `gorm:"type:double precision"`
	Available      bool      `gorm:"not null"`
}

// TableName specifies the database table name for driver profiles.
func (DriverDTO) TableName() string {
	return "drivers"
}

func fromDomain(d *driver.Driver) DriverDTO {
	dto := DriverDTO{
		UserID:         d.UserID().Bytes(),
		VehicleDetails: d.VehicleDetails(),
		Available:      d.IsAvailable(),
	}
	if loc := d.Location(); loc != nil {
		lat, lon := loc.Latitude(), loc.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lon
	}
	return dto
}

func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	var loc *kernel.Location
	if dto.Latitude != nil && dto.Longitude != nil {
		l, locErr := kernel.NewLocation(*dto.Latitude, *dto.Longitude)
		if locErr != nil {
			return nil, locErr
		}
		loc = &l
	}

	return driver.RestoreDriver(id, dto.VehicleDetails, loc, dto.Available)
}
