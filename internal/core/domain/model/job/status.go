package job

import (
	"fmt"
	"slices"

	"parceltrack/internal/pkg/errs"
)

// Status is the lifecycle state of a job.
//
//	Assigned -> Accepted -> EnRoute -> Completed
//
// Assigned may skip to EnRoute (scan without accepting). Every open status
// may move to Failed. Completed and Failed are terminal.
type Status int

const (
	StatusUnknown Status = iota
	StatusAssigned
	StatusAccepted
	StatusEnRoute
	StatusCompleted
	StatusFailed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusAssigned:  "assigned",
		StatusAccepted:  "accepted",
		StatusEnRoute:   "en_route",
		StatusCompleted: "completed",
		StatusFailed:    "failed",
	}
}

func getAllowedTransitions() map[Status][]Status {
	//nolint:exhaustive // closed states have no edges
	return map[Status][]Status{
		StatusAssigned: {StatusAccepted, StatusEnRoute, StatusFailed},
		StatusAccepted: {StatusEnRoute, StatusFailed},
		StatusEnRoute:  {StatusCompleted, StatusFailed},
	}
}

// ParseStatus maps a persisted status name back to a Status.
// Returns a ValueIsInvalid error for unknown names.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != StatusUnknown && name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid job status", s))
}

// Validate rejects StatusUnknown and out-of-range values.
func (s Status) Validate() error {
	if s <= StatusUnknown || s > StatusFailed {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid job status", s))
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

// IsOpen reports whether the job still counts against the
// one-open-job-per-type rule.
func (s Status) IsOpen() bool {
	return s == StatusAssigned || s == StatusAccepted || s == StatusEnRoute
}

// TransitionTo returns the target status if the edge exists.
// Returns an InvalidTransition error otherwise.
func (s Status) TransitionTo(to Status) (Status, error) {
	if !slices.Contains(getAllowedTransitions()[s], to) {
		return StatusUnknown, errs.NewInvalidTransitionError("job", s.String(), to.String())
	}
	return to, nil
}
