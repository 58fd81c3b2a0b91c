package queries

import (
	"context"

	"parceltrack/internal/core/domain/services"

	"gorm.io/gorm"
)

// ListCustomerParcelsQueryHandler reads a customer's parcel summaries.
type ListCustomerParcelsQueryHandler struct {
	db     *gorm.DB
	policy services.AccessPolicy
}

// NewListCustomerParcelsQueryHandler creates a handler for the customer parcel list.
func NewListCustomerParcelsQueryHandler(db *gorm.DB, policy services.AccessPolicy) ListCustomerParcelsQueryHandler {
	return ListCustomerParcelsQueryHandler{db: db, policy: policy}
}

// Handle returns the caller's parcels.
// Returns errs.ErrUnauthorized for callers other than customers.
func (h ListCustomerParcelsQueryHandler) Handle(
	ctx context.Context,
	query ListCustomerParcelsQuery,
) ([]ParcelSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor := query.Actor()
	if err := h.policy.Authorize(actor, services.ActionListOwnParcels, services.OwnedBy(actor.ID())); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+parcelSummaryColumns+`
		FROM parcels
		WHERE customer_id = ?
		ORDER BY booked_at DESC, id
	`, actor.ID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanParcelSummaries(rows)
}
