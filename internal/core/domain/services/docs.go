// Package services contains the pure domain services of the parcel
// lifecycle.
//
// The package includes:
//   - Lifecycle: validates every transition against the parcel and job
//     graphs and returns the mutated aggregates with their audit records
//   - AccessPolicy: the (action, role) dispatch table used by commands and queries
//   - Emitter: the fixed tracking labels and notification texts per transition
//   - DriverLocator: ranks available drivers by distance from a point
//
// None of the services perform I/O; command handlers load the aggregates
// through a unit of work and persist the returned Transition.
package services
