package parcel

import (
	"fmt"
	"slices"

	"parceltrack/internal/pkg/errs"
)

// Status is the lifecycle state of a parcel.
//
//	OrderPlaced -> AwaitingPickup -> Collected -> OutForDelivery -> Delivered
//
// OrderPlaced may skip straight to OutForDelivery, AwaitingPickup and
// OutForDelivery have self edges (pickup re-assignment, delivery scan), and
// FailedDelivery and Cancelled are reachable from every non-terminal state.
// Delivered, FailedDelivery and Cancelled are terminal.
type Status int

const (
	StatusUnknown Status = iota
	StatusOrderPlaced
	StatusAwaitingPickup
	StatusCollected
	StatusOutForDelivery
	StatusDelivered
	StatusFailedDelivery
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "unknown",
		StatusOrderPlaced:    "order_placed",
		StatusAwaitingPickup: "awaiting_pickup",
		StatusCollected:      "collected",
		StatusOutForDelivery: "out_for_delivery",
		StatusDelivered:      "delivered",
		StatusFailedDelivery: "failed_delivery",
		StatusCancelled:      "cancelled",
	}
}

func getStatusLabels() map[Status]string {
	return map[Status]string{
		StatusOrderPlaced:    "Order Placed",
		StatusAwaitingPickup: "Awaiting Pickup",
		StatusCollected:      "Collected",
		StatusOutForDelivery: "Out for Delivery",
		StatusDelivered:      "Delivered",
		StatusFailedDelivery: "Failed Delivery",
		StatusCancelled:      "Cancelled",
	}
}

// getAllowedTransitions is the edge table every parcel transition is
// checked against. Terminal states have no outgoing edges.
func getAllowedTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal and unknown states have no edges
	return map[Status][]Status{
		StatusOrderPlaced: {
			StatusAwaitingPickup, StatusOutForDelivery, StatusFailedDelivery, StatusCancelled,
		},
		StatusAwaitingPickup: {
			StatusAwaitingPickup, StatusCollected, StatusOutForDelivery, StatusFailedDelivery, StatusCancelled,
		},
		StatusCollected: {
			StatusOutForDelivery, StatusFailedDelivery, StatusCancelled,
		},
		StatusOutForDelivery: {
			StatusOutForDelivery, StatusDelivered, StatusFailedDelivery, StatusCancelled,
		},
	}
}

// ParseStatus maps a persisted status name back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != StatusUnknown && name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid parcel status", s))
}

// Validate rejects StatusUnknown and out-of-range values.
func (s Status) Validate() error {
	if s <= StatusUnknown || s > StatusCancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid parcel status", s))
	}
	return nil
}

// String returns the persisted name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Label is the human readable name shown to customers.
func (s Status) Label() string {
	if label, ok := getStatusLabels()[s]; ok {
		return label
	}
	return "Unknown"
}

// IsTerminal reports whether the status has no outgoing edges.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusFailedDelivery || s == StatusCancelled
}

// CanTransitionTo reports whether the edge s -> to exists.
func (s Status) CanTransitionTo(to Status) bool {
	return slices.Contains(getAllowedTransitions()[s], to)
}

// TransitionTo returns the target status if the edge exists.
func (s Status) TransitionTo(to Status) (Status, error) {
	if !s.CanTransitionTo(to) {
		return StatusUnknown, errs.NewInvalidTransitionError("parcel", s.String(), to.String())
	}
	return to, nil
}
