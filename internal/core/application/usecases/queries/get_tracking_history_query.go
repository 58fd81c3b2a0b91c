package queries

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/guard"
)

// ErrGetTrackingHistoryQueryIsNotConstructed is returned when GetTrackingHistoryQuery is not created via constructor.
var ErrGetTrackingHistoryQueryIsNotConstructed = errors.New(
	"GetTrackingHistoryQuery must be created via NewGetTrackingHistoryQuery constructor",
)

// GetTrackingHistoryQuery looks a parcel up by its public tracking code.
// The actor may be user.Anonymous() for public lookups.
//
// Example:
//
//	query, err := NewGetTrackingHistoryQuery(user.Anonymous(), "3f2a9c1e")
//	view, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrTrackingNotAvailable) {
//	    // the parcel has not been handed to a delivery driver yet
//	}
type GetTrackingHistoryQuery struct {
	actor        user.Actor
	trackingCode kernel.TrackingCode

	guard guard.ConstructorGuard
}

// NewGetTrackingHistoryQuery normalises the tracking code (trim, upper-case).
func NewGetTrackingHistoryQuery(actor user.Actor, trackingCode string) (GetTrackingHistoryQuery, error) {
	code, err := kernel.TrackingCodeFromString(trackingCode)
	if err != nil {
		return GetTrackingHistoryQuery{}, err
	}

	return GetTrackingHistoryQuery{
		actor:        actor,
		trackingCode: code,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetTrackingHistoryQueryIsNotConstructed if validation fails.
func (q GetTrackingHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingHistoryQueryIsNotConstructed)
}

// Actor returns the caller, possibly anonymous.
func (q GetTrackingHistoryQuery) Actor() user.Actor {
	return q.actor
}

// TrackingCode returns the normalised tracking code.
func (q GetTrackingHistoryQuery) TrackingCode() kernel.TrackingCode {
	return q.trackingCode
}

// TrackingView is what a customer sees when tracking a parcel. Events are
// newest first. DriverLocation is set only while the parcel is out for
// delivery and the driver has reported a position.
type TrackingView struct {
	TrackingCode       string              `json:"tracking_code"`
	Status             string              `json:"status"`
	StatusLabel        string              `json:"status_label"`
	PickupAddress      string              `json:"pickup_address"`
	DeliveryAddress    string              `json:"delivery_address"`
	RecipientName      string              `json:"recipient_name"`
	BookedAt           time.Time           `json:"booked_at"`
	ExpectedDeliveryAt *time.Time          `json:"expected_delivery_at,omitempty"`
	UpdatedAt          time.Time           `json:"updated_at"`
	DriverLocation     *DriverLocation     `json:"driver_location,omitempty"`
	Events             []TrackingEventView `json:"events"`
}

// DriverLocation is the last reported position of the delivering driver.
type DriverLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// TrackingEventView is one entry of the public tracking timeline.
type TrackingEventView struct {
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"timestamp"`
	Label      string    `json:"status_update"`
	Notes      string    `json:"notes,omitempty"`
	Location   string    `json:"location,omitempty"`
	ProofRefs  []string  `json:"proof_refs,omitempty"`
}
