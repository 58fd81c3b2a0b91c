// Package postgres implements the unit of work over a GORM transaction.
//
// A unit of work is created per command. Repositories obtained after Begin
// run inside its transaction and register every aggregate they write. On
// Commit the unit of work:
//
//  1. turns each tracked tracking event into an outbox message in the same
//     transaction,
//  2. commits,
//  3. hands the tracked aggregates to the registered commit observers
//     (cache invalidation, geo index), whose failures are only logged.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	p, err := uow.ParcelRepository().GetForUpdate(ctx, parcelID)
//	...
//	return uow.Commit(ctx)
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"parceltrack/internal/adapters/out/postgres/driverrepo"
	"parceltrack/internal/adapters/out/postgres/jobrepo"
	"parceltrack/internal/adapters/out/postgres/notificationrepo"
	"parceltrack/internal/adapters/out/postgres/outboxrepo"
	"parceltrack/internal/adapters/out/postgres/parcelrepo"
	"parceltrack/internal/adapters/out/postgres/trackingrepo"
	"parceltrack/internal/adapters/out/postgres/userrepo"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/tracking"
	"parceltrack/internal/core/ports"

	"gorm.io/gorm"
)

// DefaultTrackingEventsTopic is the broker topic of tracking event messages.
const DefaultTrackingEventsTopic = "parcel.tracking-events"

type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates units of work sharing one connection pool,
// the outbox topic and the commit observers.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	topic     string
	observers []ports.CommitObserver
}

// FactoryOption configures a GormUnitOfWorkFactory.
type FactoryOption func(*GormUnitOfWorkFactory)

// WithTrackingEventsTopic overrides DefaultTrackingEventsTopic.
func WithTrackingEventsTopic(topic string) FactoryOption {
	return func(f *GormUnitOfWorkFactory) {
		if topic != "" {
			f.topic = topic
		}
	}
}

// WithCommitObservers registers observers notified after every successful commit.
// Observers run in registration order.
func WithCommitObservers(observers ...ports.CommitObserver) FactoryOption {
	return func(f *GormUnitOfWorkFactory) {
		f.observers = append(f.observers, observers...)
	}
}

// NewGormUnitOfWorkFactory creates a factory over db. The connection must be
// opened with TranslateError so unique violations map to gorm.ErrDuplicatedKey.
//
// Example:
//
//	factory := postgres.NewGormUnitOfWorkFactory(db,
//	    postgres.WithCommitObservers(invalidator, indexer),
//	)
//	uow := factory.Create()
func NewGormUnitOfWorkFactory(db *gorm.DB, opts ...FactoryOption) *GormUnitOfWorkFactory {
	f := &GormUnitOfWorkFactory{
		db:    db,
		topic: DefaultTrackingEventsTopic,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create returns a fresh unit of work. Begin must be called before use.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		topic:             f.topic,
		observers:         f.observers,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork implements ports.UnitOfWork on a single GORM transaction.
// It is not safe for concurrent use.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	topic             string
	observers         []ports.CommitObserver
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it again on an open unit of work is
// a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit writes the outbox messages of the tracked events, commits the
// transaction and then notifies the observers.
// Returns gorm.ErrInvalidTransaction when Begin was not called.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if err := uow.enqueueTrackingEvents(ctx); err != nil {
		return err
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return err
	}

	uow.notifyObservers(ctx)
	return nil
}

// Rollback returns gorm.ErrInvalidTransaction when there is nothing to roll
// back, which is the normal case for a deferred Rollback after Commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// UserRepository returns a user repository bound to the transaction.
func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn(), uow)
}

// DriverRepository returns a driver repository bound to the transaction.
func (uow *GormUnitOfWork) DriverRepository() ports.DriverRepository {
	return driverrepo.NewGormDriverRepository(uow.conn(), uow)
}

// ParcelRepository returns a parcel repository bound to the transaction.
func (uow *GormUnitOfWork) ParcelRepository() ports.ParcelRepository {
	return parcelrepo.NewGormParcelRepository(uow.conn(), uow)
}

// JobRepository returns a job repository bound to the transaction.
func (uow *GormUnitOfWork) JobRepository() ports.JobRepository {
	return jobrepo.NewGormJobRepository(uow.conn(), uow)
}

// TrackingEventRepository returns the tracking event log bound to the transaction.
func (uow *GormUnitOfWork) TrackingEventRepository() ports.TrackingEventRepository {
	return trackingrepo.NewGormTrackingEventRepository(uow.conn(), uow)
}

// NotificationRepository returns a notification repository bound to the transaction.
func (uow *GormUnitOfWork) NotificationRepository() ports.NotificationRepository {
	return notificationrepo.NewGormNotificationRepository(uow.conn(), uow)
}

// OutboxRepository returns the outbox bound to the transaction.
func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackAggregate is called by the repositories for every aggregate they
// write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) enqueueTrackingEvents(ctx context.Context) error {
	parcels := make(map[kernel.UUID]*parcel.Parcel)
	for _, t := range uow.trackedAggregates {
		if p, ok := t.Aggregate.(*parcel.Parcel); ok {
			parcels[t.ID] = p
		}
	}

	var messages []ports.OutboxMessage
	for _, t := range uow.trackedAggregates {
		e, ok := t.Aggregate.(*tracking.Event)
		if !ok {
			continue
		}

		code, status, err := uow.parcelState(ctx, parcels, e.ParcelID())
		if err != nil {
			return err
		}

		payload, err := json.Marshal(newTrackingEventMessage(e, code, status))
		if err != nil {
			return fmt.Errorf("encode tracking event %s: %w", e.ID(), err)
		}

		messages = append(messages, ports.OutboxMessage{
			Topic:     uow.topic,
			Key:       code,
			Payload:   payload,
			CreatedAt: e.OccurredAt(),
		})
	}

	return outboxrepo.NewGormOutboxRepository(uow.tx).Enqueue(ctx, messages)
}

// parcelState prefers the parcel written in this unit of work and falls back
// to the stored row.
func (uow *GormUnitOfWork) parcelState(
	ctx context.Context,
	written map[kernel.UUID]*parcel.Parcel,
	parcelID kernel.UUID,
) (string, string, error) {
	if p, ok := written[parcelID]; ok {
		return p.TrackingCode().String(), p.Status().String(), nil
	}

	p, err := parcelrepo.NewGormParcelRepository(uow.tx, uow).Get(ctx, parcelID)
	if err != nil {
		return "", "", err
	}
	return p.TrackingCode().String(), p.Status().String(), nil
}

func (uow *GormUnitOfWork) notifyObservers(ctx context.Context) {
	if len(uow.observers) == 0 || len(uow.trackedAggregates) == 0 {
		return
	}

	aggregates := make([]any, 0, len(uow.trackedAggregates))
	for _, t := range uow.trackedAggregates {
		aggregates = append(aggregates, t.Aggregate)
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]

	for _, o := range uow.observers {
		o.AfterCommit(ctx, aggregates)
	}
}

func newTrackingEventMessage(e *tracking.Event, code, status string) ports.TrackingEventMessage {
	msg := ports.TrackingEventMessage{
		EventID:      e.ID().String(),
		ParcelID:     e.ParcelID().String(),
		TrackingCode: code,
		ParcelStatus: status,
		Label:        e.Label(),
		Notes:        e.Notes(),
		Location:     e.Location(),
		ProofRefs:    e.ProofRefs(),
		OccurredAt:   e.OccurredAt(),
	}
	if by := e.RecordedBy(); by != nil {
		msg.RecordedBy = by.String()
	}
	return msg
}
