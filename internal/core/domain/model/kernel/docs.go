// Package kernel provides the value objects shared by every aggregate of the
// parcel tracking domain.
//
// The package includes:
//   - UUID: identifiers for users, drivers, parcels, jobs, events and notifications
//   - TrackingCode: the short public parcel identifier
//   - Location: a validated latitude/longitude pair
//   - Clock: the time source injected into the lifecycle engine
//
// Value objects are immutable and reject their zero value in Validate.
package kernel
