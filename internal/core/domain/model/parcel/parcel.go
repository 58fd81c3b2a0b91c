package parcel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ErrParcelIsNotConstructed is returned when a Parcel is not created via constructor.
var ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel constructor")

// Details is the booking information supplied by the customer.
type Details struct {
	PickupAddress        string
	DeliveryAddress      string
	RecipientName        string
	RecipientPhone       string
	Description          string
	WeightKg             float64
	Dimensions           string
	ExpectedDeliveryAt   *time.Time
	DeliveryInstructions string
}

// Parcel is the aggregate root of the lifecycle. It owns the status, the
// current driver and the tracking gate.
//
// Invariants:
//   - status only changes along the edges returned by getAllowedTransitions
//   - the tracking code never changes after booking
//   - canCustomerTrack goes from false to true and never back
//   - updatedAt is the timestamp of the newest audit event and never decreases
type Parcel struct {
	id               kernel.UUID
	trackingCode     kernel.TrackingCode
	customerID       kernel.UUID
	details          Details
	status           Status
	currentDriverID  *kernel.UUID
	canCustomerTrack bool
	bookedAt         time.Time
	updatedAt        time.Time
	guard            guard.ConstructorGuard
}

// NewParcel books a parcel for a customer. The parcel starts in
// StatusOrderPlaced with the tracking gate closed.
//
// Example:
//
//	p, err := parcel.NewParcel(customer.ID(), parcel.Details{
//	    PickupAddress:   "1 High St",
//	    DeliveryAddress: "2 Low Rd",
//	    RecipientName:   "Ann",
//	    WeightKg:        1.2,
//	}, clock.Now())
func NewParcel(customerID kernel.UUID, details Details, bookedAt time.Time) (*Parcel, error) {
	return RestoreParcel(
		kernel.NewUUID(),
		kernel.NewTrackingCode(),
		customerID,
		details,
		StatusOrderPlaced,
		nil,
		false,
		bookedAt,
		bookedAt,
	)
}

// RestoreParcel rebuilds a parcel loaded from storage.
func RestoreParcel(
	id kernel.UUID,
	trackingCode kernel.TrackingCode,
	customerID kernel.UUID,
	details Details,
	status Status,
	currentDriverID *kernel.UUID,
	canCustomerTrack bool,
	bookedAt time.Time,
	updatedAt time.Time,
) (*Parcel, error) {
	p := &Parcel{
		canCustomerTrack: canCustomerTrack,
		bookedAt:         bookedAt,
		updatedAt:        updatedAt,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingCode(trackingCode),
		p.setCustomerID(customerID),
		p.setDetails(details),
		p.setStatus(status),
		p.setCurrentDriver(currentDriverID),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the parcel was created through a constructor.
// Returns ErrParcelIsNotConstructed if validation fails.
//
// Example:
//
//	var p parcel.Parcel
//	err := p.Validate() // ErrParcelIsNotConstructed
func (p *Parcel) Validate() error {
	if p == nil {
		return ErrParcelIsNotConstructed
	}
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

// ID returns the internal identifier of the parcel.
func (p *Parcel) ID() kernel.UUID {
	return p.id
}

// TrackingCode returns the public tracking code.
func (p *Parcel) TrackingCode() kernel.TrackingCode {
	return p.trackingCode
}

// CustomerID returns the customer who booked the parcel.
func (p *Parcel) CustomerID() kernel.UUID {
	return p.customerID
}

// Details returns the booking information.
func (p *Parcel) Details() Details {
	return p.details
}

// Status returns the current lifecycle state.
func (p *Parcel) Status() Status {
	return p.status
}

// CurrentDriver returns the driver currently responsible, or nil.
func (p *Parcel) CurrentDriver() *kernel.UUID {
	if p.currentDriverID == nil {
		return nil
	}
	id := *p.currentDriverID
	return &id
}

// CanCustomerTrack reports whether the tracking gate is open. The gate opens
// when the parcel first goes out for delivery.
func (p *Parcel) CanCustomerTrack() bool {
	return p.canCustomerTrack
}

// BookedAt returns the booking time.
func (p *Parcel) BookedAt() time.Time {
	return p.bookedAt
}

// UpdatedAt returns the timestamp of the newest audit event.
func (p *Parcel) UpdatedAt() time.Time {
	return p.updatedAt
}

// IsOwnedBy reports whether the customer with the given id booked the parcel.
func (p *Parcel) IsOwnedBy(customerID kernel.UUID) bool {
	return p.customerID.IsEqual(customerID)
}

// AssignPickup moves the parcel to StatusAwaitingPickup and binds the driver.
func (p *Parcel) AssignPickup(driverID kernel.UUID) error {
	return p.moveWithDriver(StatusAwaitingPickup, driverID)
}

// AssignDelivery moves the parcel to StatusOutForDelivery, binds the driver
// and opens the tracking gate.
func (p *Parcel) AssignDelivery(driverID kernel.UUID) error {
	if err := p.moveWithDriver(StatusOutForDelivery, driverID); err != nil {
		return err
	}
	p.canCustomerTrack = true
	return nil
}

// MarkCollected records the pickup scan.
func (p *Parcel) MarkCollected() error {
	return p.move(StatusCollected)
}

// MarkOutForDelivery records the delivery scan and opens the tracking gate.
func (p *Parcel) MarkOutForDelivery() error {
	if err := p.move(StatusOutForDelivery); err != nil {
		return err
	}
	p.canCustomerTrack = true
	return nil
}

// MarkDelivered closes the parcel as delivered.
func (p *Parcel) MarkDelivered() error {
	return p.move(StatusDelivered)
}

// MarkDeliveryFailed closes the parcel as undeliverable.
func (p *Parcel) MarkDeliveryFailed() error {
	return p.move(StatusFailedDelivery)
}

// Cancel closes the parcel as cancelled. Terminal parcels cannot be cancelled.
func (p *Parcel) Cancel() error {
	return p.move(StatusCancelled)
}

// ReleaseDriver unbinds the current driver without changing the status.
func (p *Parcel) ReleaseDriver() {
	p.currentDriverID = nil
}

// Touch advances updatedAt to max(now, updatedAt) and returns it. Every
// audit event of the parcel is stamped with the returned time so events
// stay ordered even when application clocks disagree.
func (p *Parcel) Touch(now time.Time) time.Time {
	p.updatedAt = p.StampFor(now)
	return p.updatedAt
}

// StampFor returns max(now, updatedAt) without changing the parcel.
func (p *Parcel) StampFor(now time.Time) time.Time {
	if now.After(p.updatedAt) {
		return now
	}
	return p.updatedAt
}

func (p *Parcel) move(to Status) error {
	next, err := p.status.TransitionTo(to)
	if err != nil {
		return err
	}
	p.status = next
	return nil
}

func (p *Parcel) moveWithDriver(to Status, driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if err := p.move(to); err != nil {
		return err
	}
	p.currentDriverID = &driverID
	return nil
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setTrackingCode(code kernel.TrackingCode) error {
	if err := code.Validate(); err != nil {
		return err
	}
	p.trackingCode = code
	return nil
}

func (p *Parcel) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer", err)
	}
	p.customerID = id
	return nil
}

func (p *Parcel) setDetails(d Details) error {
	d.PickupAddress = strings.TrimSpace(d.PickupAddress)
	d.DeliveryAddress = strings.TrimSpace(d.DeliveryAddress)
	d.RecipientName = strings.TrimSpace(d.RecipientName)
	d.RecipientPhone = strings.TrimSpace(d.RecipientPhone)
	d.Description = strings.TrimSpace(d.Description)
	d.Dimensions = strings.TrimSpace(d.Dimensions)
	d.DeliveryInstructions = strings.TrimSpace(d.DeliveryInstructions)

	var problems []error
	if d.PickupAddress == "" {
		problems = append(problems, errs.NewValueIsRequiredError("pickup address"))
	}
	if d.DeliveryAddress == "" {
		problems = append(problems, errs.NewValueIsRequiredError("delivery address"))
	}
	if d.RecipientName == "" {
		problems = append(problems, errs.NewValueIsRequiredError("recipient name"))
	}
	if !(d.WeightKg > 0) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"weight", fmt.Errorf("%v is not greater than 0", d.WeightKg)))
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	p.details = d
	return nil
}

func (p *Parcel) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	p.status = status
	return nil
}

func (p *Parcel) setCurrentDriver(driverID *kernel.UUID) error {
	if driverID == nil {
		return nil
	}
	if err := driverID.Validate(); err != nil {
		return err
	}
	id := *driverID
	p.currentDriverID = &id
	return nil
}
