// Package parcel contains the Parcel aggregate root and its status graph.
//
// A parcel is booked by a customer, picked up and delivered by drivers
// through jobs, and becomes visible to its customer once it is out for
// delivery. All status changes go through Status.TransitionTo, which
// rejects any edge outside the allowed graph with an InvalidTransitionError.
package parcel
