package queries

import (
	"database/sql"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelSummary is one row of a parcel listing.
type ParcelSummary struct {
	ID                 kernel.UUID
	TrackingCode       string
	CustomerID         kernel.UUID
	RecipientName      string
	PickupAddress      string
	DeliveryAddress    string
	Status             parcel.Status
	CurrentDriverID    *kernel.UUID
	CanCustomerTrack   bool
	BookedAt           time.Time
	ExpectedDeliveryAt *time.Time
	UpdatedAt          time.Time
}

const parcelSummaryColumns = `
	id,
	tracking_code,
	customer_id,
	recipient_name,
	pickup_address,
	delivery_address,
	status,
	current_driver_id,
	can_customer_track,
	booked_at,
	expected_delivery_at,
	updated_at`

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanParcelSummaries(rows rowScanner) ([]ParcelSummary, error) {
	parcels := make([]ParcelSummary, 0)

	for rows.Next() {
		var (
			p          ParcelSummary
			id         uuid.UUID
			customerID uuid.UUID
			driverID   uuid.NullUUID
			status     int16
			expected   sql.NullTime
		)

		err := rows.Scan(
			&id,
			&p.TrackingCode,
			&customerID,
			&p.RecipientName,
			&p.PickupAddress,
			&p.DeliveryAddress,
			&status,
			&driverID,
			&p.CanCustomerTrack,
			&p.BookedAt,
			&expected,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if p.ID, err = toKernelUUID(id); err != nil {
			return nil, err
		}
		if p.CustomerID, err = toKernelUUID(customerID); err != nil {
			return nil, err
		}
		if p.CurrentDriverID, err = toNullableKernelUUID(driverID); err != nil {
			return nil, err
		}
		p.Status = parcel.Status(status)
		p.ExpectedDeliveryAt = toNullableTime(expected)

		parcels = append(parcels, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return parcels, nil
}
