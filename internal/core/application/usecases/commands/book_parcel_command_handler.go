package commands

import (
	"context"
	"fmt"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"
)

// maxTrackingCodeAttempts bounds the regeneration of colliding codes.
const maxTrackingCodeAttempts = 5

// BookParcelCommandHandler creates parcels for customers.
// The parcel gets a fresh tracking code and its first tracking event.
//
// Example:
//
//	handler := NewBookParcelCommandHandler(uowFactory, lifecycle)
//	cmd := NewBookParcelCommand(customer, details)
//
//	p, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("booking failed: %w", err)
//	}
//	fmt.Println(p.TrackingCode())
type BookParcelCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  *services.Lifecycle
}

// NewBookParcelCommandHandler creates a handler for parcel booking.
// Requires a UoWFactory for transactional persistence operations.
func NewBookParcelCommandHandler(uowFactory UoWFactory, lifecycle *services.Lifecycle) BookParcelCommandHandler {
	return BookParcelCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
	}
}

// Handle processes the booking command and returns the stored parcel.
// Returns errs.ErrUnauthorized for non-customer actors and a validation
// error for incomplete details.
func (h BookParcelCommandHandler) Handle(ctx context.Context, cmd BookParcelCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()

	var tr services.Transition
	for attempt := 1; ; attempt++ {
		var err error
		tr, err = h.lifecycle.BookParcel(cmd.Actor(), cmd.Actor().ID(), cmd.Details())
		if err != nil {
			return nil, err
		}

		exists, err := parcelRepo.TrackingCodeExists(ctx, tr.Parcel.TrackingCode())
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
		if attempt == maxTrackingCodeAttempts {
			return nil, fmt.Errorf("no free tracking code after %d attempts", attempt)
		}
	}

	if err := saveTransition(ctx, uow, tr, true); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return tr.Parcel, nil
}
