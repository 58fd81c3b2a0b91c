package driverrepo

import (
	"context"
	"errors"

	"parceltrack/internal/core/domain/model/driver"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDriverRepository implements DriverRepository using GORM.
type GormDriverRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDriverRepository creates a new GORM driver repository.
func NewGormDriverRepository(db *gorm.DB, tracker aggregateTracker) *GormDriverRepository {
	return &GormDriverRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new driver profile to the database.
func (r *GormDriverRepository) Add(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.UserID(), aggregate)
	return nil
}

// Update overwrites the position and availability. Null coordinates are
// written too, hence the explicit column list.
func (r *GormDriverRepository) Update(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DriverDTO{}).
		Where("user_id = ?", dto.UserID).
		Select("vehicle_details", "latitude", "longitude", "available").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("driver", aggregate.UserID().String())
	}

	r.tracker.TrackAggregate(aggregate.UserID(), aggregate)
	return nil
}

// Get retrieves a driver profile by its user ID.
func (r *GormDriverRepository) Get(ctx context.Context, userID kernel.UUID) (*driver.Driver, error) {
	return r.get(ctx, r.db, userID)
}

// GetForUpdate retrieves a driver profile and locks its row until the transaction ends.
func (r *GormDriverRepository) GetForUpdate(ctx context.Context, userID kernel.UUID) (*driver.Driver, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), userID)
}

func (r *GormDriverRepository) get(ctx context.Context, db *gorm.DB, userID kernel.UUID) (*driver.Driver, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dto DriverDTO
	if err := db.WithContext(ctx).First(&dto, "user_id = ?", userID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("driver", userID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
