package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/metrics"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// trackingRecord is the cached unit. It keeps the ownership and gate data
// next to the view so every read, cached or not, is authorized the same
// way. The driver position is not cached; it is read live.
type trackingRecord struct {
	CustomerID       uuid.UUID     `json:"customer_id"`
	CanCustomerTrack bool          `json:"can_customer_track"`
	CurrentDriverID  uuid.NullUUID `json:"current_driver_id"`
	View             TrackingView  `json:"view"`
}

// GetTrackingHistoryQueryHandler serves tracking views through the
// read-through cache. Cache failures degrade to a database read.
type GetTrackingHistoryQueryHandler struct {
	db     *gorm.DB
	cache  ports.TrackingViewCache
	policy services.AccessPolicy
	logger *zap.Logger
}

// NewGetTrackingHistoryQueryHandler creates a handler for tracking lookups.
// Requires the database, the tracking view cache and the access policy.
func NewGetTrackingHistoryQueryHandler(
	db *gorm.DB,
	cache ports.TrackingViewCache,
	policy services.AccessPolicy,
	logger *zap.Logger,
) GetTrackingHistoryQueryHandler {
	return GetTrackingHistoryQueryHandler{
		db:     db,
		cache:  cache,
		policy: policy,
		logger: logger.With(zap.String("component", "tracking_history")),
	}
}

// Handle returns the tracking view of a parcel.
// Returns errs.ErrObjectNotFound for unknown codes, errs.ErrTrackingNotAvailable
// while the parcel is not yet out for delivery and errs.ErrUnauthorized when
// a signed-in caller has no relation to the parcel.
func (h GetTrackingHistoryQueryHandler) Handle(ctx context.Context, query GetTrackingHistoryQuery) (*TrackingView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	code := query.TrackingCode().String()

	record, err := h.load(ctx, code)
	if err != nil {
		return nil, err
	}

	owner, err := toKernelUUID(record.CustomerID)
	if err != nil {
		return nil, err
	}
	if err = h.policy.AuthorizeTrackingRead(query.Actor(), owner, record.CanCustomerTrack, code); err != nil {
		return nil, err
	}

	view := record.View
	if view.Status == parcel.StatusOutForDelivery.String() && record.CurrentDriverID.Valid {
		view.DriverLocation, err = h.driverLocation(ctx, record.CurrentDriverID.UUID)
		if err != nil {
			return nil, err
		}
	}

	return &view, nil
}

// load serves the record from the cache or the database. A miss is written
// back only when no invalidation happened since the cache was consulted;
// after a cache read error nothing is written.
func (h GetTrackingHistoryQueryHandler) load(ctx context.Context, code string) (*trackingRecord, error) {
	payload, version, ok, err := h.cache.Get(ctx, code)
	cacheable := err == nil
	switch {
	case err != nil:
		metrics.RecordTrackingCacheLookup(metrics.CacheError)
		h.logger.Warn("tracking cache read failed", zap.String("tracking_code", code), zap.Error(err))
	case !ok:
		metrics.RecordTrackingCacheLookup(metrics.CacheMiss)
	default:
		var record trackingRecord
		if err = json.Unmarshal(payload, &record); err == nil {
			metrics.RecordTrackingCacheLookup(metrics.CacheHit)
			return &record, nil
		}
		metrics.RecordTrackingCacheLookup(metrics.CacheError)
		h.logger.Warn("discarding undecodable tracking cache entry", zap.String("tracking_code", code), zap.Error(err))
	}

	record, err := h.read(ctx, code)
	if err != nil {
		return nil, err
	}
	if !cacheable {
		return record, nil
	}

	stored := false
	if payload, err = json.Marshal(record); err == nil {
		stored, err = h.cache.Set(ctx, code, payload, version)
	}
	switch {
	case err != nil:
		h.logger.Warn("tracking cache write failed", zap.String("tracking_code", code), zap.Error(err))
	case !stored:
		h.logger.Debug("tracking view changed while loading, not cached", zap.String("tracking_code", code))
	}

	return record, nil
}

func (h GetTrackingHistoryQueryHandler) read(ctx context.Context, code string) (*trackingRecord, error) {
	var (
		record   trackingRecord
		parcelID uuid.UUID
		status   int16
		expected sql.NullTime
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			tracking_code,
			status,
			current_driver_id,
			can_customer_track,
			pickup_address,
			delivery_address,
			recipient_name,
			booked_at,
			expected_delivery_at,
			updated_at
		FROM parcels
		WHERE tracking_code = ?
	`, code).Row()

	err := row.Scan(
		&parcelID,
		&record.CustomerID,
		&record.View.TrackingCode,
		&status,
		&record.CurrentDriverID,
		&record.CanCustomerTrack,
		&record.View.PickupAddress,
		&record.View.DeliveryAddress,
		&record.View.RecipientName,
		&record.View.BookedAt,
		&expected,
		&record.View.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("tracking_code", code)
	}
	if err != nil {
		return nil, err
	}

	s := parcel.Status(status)
	record.View.Status = s.String()
	record.View.StatusLabel = s.Label()
	record.View.ExpectedDeliveryAt = toNullableTime(expected)

	record.View.Events, err = h.events(ctx, parcelID)
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (h GetTrackingHistoryQueryHandler) events(ctx context.Context, parcelID uuid.UUID) ([]TrackingEventView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			occurred_at,
			label,
			notes,
			location,
			proof_refs
		FROM tracking_events
		WHERE parcel_id = ?
		ORDER BY occurred_at DESC, id DESC
	`, parcelID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]TrackingEventView, 0)
	for rows.Next() {
		var (
			e         TrackingEventView
			id        uuid.UUID
			proofRefs pq.StringArray
		)
		if err = rows.Scan(&id, &e.OccurredAt, &e.Label, &e.Notes, &e.Location, &proofRefs); err != nil {
			return nil, err
		}
		e.ID = id.String()
		if len(proofRefs) > 0 {
			e.ProofRefs = proofRefs
		}
		events = append(events, e)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (h GetTrackingHistoryQueryHandler) driverLocation(ctx context.Context, driverID uuid.UUID) (*DriverLocation, error) {
	var lat, lon sql.NullFloat64

	err := h.db.WithContext(ctx).Raw(`
		SELECT latitude, longitude FROM drivers WHERE user_id = ?
	`, driverID).Row().Scan(&lat, &lon)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if !lat.Valid || !lon.Valid {
		return nil, nil
	}
	return &DriverLocation{Latitude: lat.Float64, Longitude: lon.Float64}, nil
}
