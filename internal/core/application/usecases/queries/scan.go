package queries

import (
	"database/sql"
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

func toKernelUUID(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func toNullableKernelUUID(id uuid.NullUUID) (*kernel.UUID, error) {
	if !id.Valid {
		return nil, nil
	}
	restored, err := toKernelUUID(id.UUID)
	if err != nil {
		return nil, err
	}
	return &restored, nil
}

func toNullableLocation(lat, lon sql.NullFloat64) (*kernel.Location, error) {
	if !lat.Valid || !lon.Valid {
		return nil, nil
	}
	location, err := kernel.NewLocation(lat.Float64, lon.Float64)
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func toNullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func fullName(first, last, fallback string) string {
	name := strings.TrimSpace(first + " " + last)
	if name == "" {
		return fallback
	}
	return name
}
