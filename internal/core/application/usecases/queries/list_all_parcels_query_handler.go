package queries

import (
	"context"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/services"

	"gorm.io/gorm"
)

// ListAllParcelsQueryHandler pages through all parcels for controllers.
//
// Example:
//
//	handler := NewListAllParcelsQueryHandler(db, policy)
//	query, _ := NewListAllParcelsQuery(controller, "", 50, 0)
//
//	parcels, err := handler.Handle(ctx, query)
type ListAllParcelsQueryHandler struct {
	db     *gorm.DB
	policy services.AccessPolicy
}

// NewListAllParcelsQueryHandler creates a handler for the parcel overview.
func NewListAllParcelsQueryHandler(db *gorm.DB, policy services.AccessPolicy) ListAllParcelsQueryHandler {
	return ListAllParcelsQueryHandler{db: db, policy: policy}
}

// Handle returns one page of parcel summaries.
// Returns errs.ErrUnauthorized for callers other than controllers.
func (h ListAllParcelsQueryHandler) Handle(ctx context.Context, query ListAllParcelsQuery) ([]ParcelSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := h.policy.Authorize(query.Actor(), services.ActionListAllParcels, services.Target{}); err != nil {
		return nil, err
	}

	sqlQuery := `SELECT ` + parcelSummaryColumns + ` FROM parcels`
	args := make([]any, 0, 3)
	if status := query.Status(); status != parcel.StatusUnknown {
		sqlQuery += ` WHERE status = ?`
		args = append(args, int16(status))
	}
	sqlQuery += ` ORDER BY booked_at DESC, id LIMIT ? OFFSET ?`
	args = append(args, query.Limit(), query.Offset())

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanParcelSummaries(rows)
}
