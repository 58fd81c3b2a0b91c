package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/job"
	"parceltrack/internal/core/domain/model/kernel"
)

// JobRepository persists pickup and delivery jobs.
type JobRepository interface {
	// Add stores a new job. A second open job of the same type for a
	// parcel violates a unique index and is reported as an
	// InvalidTransitionError.
	Add(ctx context.Context, aggregate *job.Job) error
	Update(ctx context.Context, aggregate *job.Job) error
	Get(ctx context.Context, id kernel.UUID) (*job.Job, error)
	GetForUpdate(ctx context.Context, id kernel.UUID) (*job.Job, error)

	// GetOpenByParcelForUpdate locks and returns the parcel's assigned,
	// accepted and en-route jobs. Call it after locking the parcel.
	GetOpenByParcelForUpdate(ctx context.Context, parcelID kernel.UUID) ([]*job.Job, error)
}
