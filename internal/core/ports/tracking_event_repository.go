package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/tracking"
)

// TrackingEventRepository is append-only.
type TrackingEventRepository interface {
	Add(ctx context.Context, event *tracking.Event) error
}
