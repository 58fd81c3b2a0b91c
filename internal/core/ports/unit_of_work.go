package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one business transaction. Repositories obtained from it
// after Begin run inside that transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit writes the outbox rows of every tracking event added in the
	// transaction, commits, then notifies the registered CommitObservers.
	Commit(ctx context.Context) error

	// Rollback discards the transaction. It is a no-op error after Commit.
	Rollback(ctx context.Context) error

	UserRepository() UserRepository
	DriverRepository() DriverRepository
	ParcelRepository() ParcelRepository
	JobRepository() JobRepository
	TrackingEventRepository() TrackingEventRepository
	NotificationRepository() NotificationRepository
	OutboxRepository() OutboxRepository
}

// CommitObserver receives the aggregates written by a unit of work after a
// successful commit. Observers are best effort: the transaction is already
// durable and their failures are only logged.
type CommitObserver interface {
	AfterCommit(ctx context.Context, aggregates []any)
}
