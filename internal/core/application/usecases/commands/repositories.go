package commands

import (
	"context"

	"parceltrack/internal/core/ports"
)

// Unit of work interfaces scope the command handlers to one transaction.
// Each handler depends on the narrowest factory that covers the repositories it touches.
type (
	// TxManager handles the database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// UserRepoFactory provides access to the user repository within a transaction.
	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// DriverRepoFactory provides access to the driver repository within a transaction.
	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	// ParcelRepoFactory provides access to the parcel repository within a transaction.
	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	// JobRepoFactory provides access to the job repository within a transaction.
	JobRepoFactory interface {
		JobRepository() ports.JobRepository
	}

	// TrackingEventRepoFactory provides access to the tracking event log within a transaction.
	TrackingEventRepoFactory interface {
		TrackingEventRepository() ports.TrackingEventRepository
	}

	// NotificationRepoFactory provides access to the notification repository within a transaction.
	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// OutboxRepoFactory provides access to the outbox within a transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// UoW is the transaction scope of the lifecycle commands.
	UoW interface {
		TxManager
		UserRepoFactory
		DriverRepoFactory
		ParcelRepoFactory
		JobRepoFactory
		TrackingEventRepoFactory
		NotificationRepoFactory
	}

	// UoWFactory creates new lifecycle unit of work instances.
	// Called once per command execution to get a fresh transaction scope.
	UoWFactory interface {
		Create() UoW
	}

	// NotificationUoW manages transactions that only touch notifications.
	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
	}

	// NotificationUoWFactory creates new notification unit of work instances.
	NotificationUoWFactory interface {
		Create() NotificationUoW
	}

	// OutboxUoW manages transactions of the outbox relay and purge jobs.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	// OutboxUoWFactory creates new outbox unit of work instances.
	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
