package queries

import (
	"context"
	"database/sql"

	"parceltrack/internal/core/domain/model/job"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListDriverJobsQueryHandler reads a driver's job list joined with parcel addresses.
type ListDriverJobsQueryHandler struct {
	db     *gorm.DB
	policy services.AccessPolicy
}

// NewListDriverJobsQueryHandler creates a handler for the driver job list.
func NewListDriverJobsQueryHandler(db *gorm.DB, policy services.AccessPolicy) ListDriverJobsQueryHandler {
	return ListDriverJobsQueryHandler{db: db, policy: policy}
}

// Handle returns the caller's jobs.
// Returns errs.ErrUnauthorized for callers other than drivers.
func (h ListDriverJobsQueryHandler) Handle(ctx context.Context, query ListDriverJobsQuery) ([]JobView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor := query.Actor()
	if err := h.policy.Authorize(actor, services.ActionListOwnJobs, services.BoundTo(actor.ID())); err != nil {
		return nil, err
	}

	statuses := []int16{int16(job.StatusAssigned), int16(job.StatusAccepted), int16(job.StatusEnRoute)}
	if !query.OpenOnly() {
		statuses = append(statuses, int16(job.StatusCompleted), int16(job.StatusFailed))
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			j.id,
			j.parcel_id,
			p.tracking_code,
			j.job_type,
			j.status,
			p.status,
			p.pickup_address,
			p.delivery_address,
			p.recipient_name,
			p.recipient_phone,
			p.delivery_instructions,
			j.assigned_at,
			j.accepted_at,
			j.completed_at,
			j.notes
		FROM jobs j
		JOIN parcels p ON p.id = j.parcel_id
		WHERE j.driver_id = ? AND j.status IN ?
		ORDER BY j.assigned_at DESC, j.id
	`, actor.ID().Bytes(), statuses).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]JobView, 0)
	for rows.Next() {
		var (
			v                        JobView
			id, parcelID             uuid.UUID
			jobType, status, pStatus int16
			acceptedAt, completedAt  sql.NullTime
		)

		err = rows.Scan(
			&id,
			&parcelID,
			&v.TrackingCode,
			&jobType,
			&status,
			&pStatus,
			&v.PickupAddress,
			&v.DeliveryAddress,
			&v.RecipientName,
			&v.RecipientPhone,
			&v.DeliveryInstructions,
			&v.AssignedAt,
			&acceptedAt,
			&completedAt,
			&v.Notes,
		)
		if err != nil {
			return nil, err
		}

		if v.ID, err = toKernelUUID(id); err != nil {
			return nil, err
		}
		if v.ParcelID, err = toKernelUUID(parcelID); err != nil {
			return nil, err
		}
		v.Type = job.Type(jobType)
		v.Status = job.Status(status)
		v.ParcelStatus = parcel.Status(pStatus)
		v.AcceptedAt = toNullableTime(acceptedAt)
		v.CompletedAt = toNullableTime(completedAt)

		jobs = append(jobs, v)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return jobs, nil
}
