// Package jobrepo persists pickup and delivery jobs.
package jobrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/job"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// JobDTO is the row of the jobs table. The partial unique index
// uq_jobs_open_per_type allows one open job per (parcel, job_type).
type JobDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ParcelID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	DriverID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	JobType     int        `gorm:"type:smallint;not null"`
	Status      int        `gorm:"type:smallint;not null"`
	AssignedAt  time.Time  `gorm:"type:timestamptz;not null"`
	AcceptedAt  *time.Time `gorm:"type:timestamptz"`
	CompletedAt *time.Time `gorm:"type:timestamptz"`
	Notes       string     `gorm:"type:text;not null"`
}

// TableName specifies the database table name for job entities.
func (JobDTO) TableName() string {
	return "jobs"
}

func fromDomain(j *job.Job) JobDTO {
	return JobDTO{
		ID:          j.ID().Bytes(),
		ParcelID:    j.ParcelID().Bytes(),
		DriverID:    j.DriverID().Bytes(),
		JobType:     int(j.Type()),
		Status:      int(j.Status()),
		AssignedAt:  j.AssignedAt(),
		AcceptedAt:  j.AcceptedAt(),
		CompletedAt: j.CompletedAt(),
		Notes:       j.Notes(),
	}
}

func toDomain(dto JobDTO) (*job.Job, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	return job.RestoreJob(
		id,
		parcelID,
		driverID,
		job.Type(dto.JobType),
		job.Status(dto.Status),
		dto.AssignedAt,
		dto.AcceptedAt,
		dto.CompletedAt,
		dto.Notes,
	)
}
