package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
)

// ParcelRepository persists parcel aggregates.
type ParcelRepository interface {
	Add(ctx context.Context, aggregate *parcel.Parcel) error
	Update(ctx context.Context, aggregate *parcel.Parcel) error
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetForUpdate locks the parcel row (SELECT ... FOR UPDATE). Writers of
	// the same parcel serialize on this lock.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// TrackingCodeExists is used to regenerate a colliding tracking code
	// before insert.
	TrackingCodeExists(ctx context.Context, code kernel.TrackingCode) (bool, error)
}
