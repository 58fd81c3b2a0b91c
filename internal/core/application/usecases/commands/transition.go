package commands

import (
	"context"

	"parceltrack/internal/core/domain/services"
)

// saveTransition writes an accepted transition in dependency order: parcel,
// jobs, tracking event, notification. newParcel selects insert over update.
func saveTransition(ctx context.Context, uow UoW, tr services.Transition, newParcel bool) error {
	parcelRepo := uow.ParcelRepository()
	if newParcel {
		if err := parcelRepo.Add(ctx, tr.Parcel); err != nil {
			return err
		}
	} else if err := parcelRepo.Update(ctx, tr.Parcel); err != nil {
		return err
	}

	if tr.NewJob != nil || len(tr.ChangedJobs) > 0 {
		jobRepo := uow.JobRepository()
		for _, j := range tr.ChangedJobs {
			if err := jobRepo.Update(ctx, j); err != nil {
				return err
			}
		}
		if tr.NewJob != nil {
			if err := jobRepo.Add(ctx, tr.NewJob); err != nil {
				return err
			}
		}
	}

	if err := uow.TrackingEventRepository().Add(ctx, tr.Event); err != nil {
		return err
	}

	if tr.Notification != nil {
		if err := uow.NotificationRepository().Add(ctx, tr.Notification); err != nil {
			return err
		}
	}

	return nil
}
