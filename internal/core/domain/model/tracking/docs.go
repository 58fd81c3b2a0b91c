// Package tracking holds the TrackingEvent entity that forms a parcel's
// append-only audit trail.
package tracking
