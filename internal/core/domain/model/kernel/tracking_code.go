package kernel

import (
	"fmt"
	"regexp"
	"strings"

	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"

	"github.com/google/uuid"
)

const trackingCodeLength = 8

var (
	ErrTrackingCodeIsNotConstructed = errs.NewValueIsRequiredError(
		"tracking code must be created via NewTrackingCode or TrackingCodeFromString")

	trackingCodePattern = regexp.MustCompile(`^[0-9A-Z-]{4,50}$`)
)

// TrackingCode is the short public identifier of a parcel. It is distinct
// from the parcel's internal id and never changes after booking.
type TrackingCode struct {
	value string
	guard guard.ConstructorGuard
}

// NewTrackingCode derives an eight character upper-case code from a fresh
// random UUID. Uniqueness is enforced by storage; callers retry on collision.
func NewTrackingCode() TrackingCode {
	return TrackingCode{
		value: strings.ToUpper(uuid.NewString()[:trackingCodeLength]),
		guard: guard.NewConstructorGuard(),
	}
}

// TrackingCodeFromString normalises user input (trim, upper-case) and
// validates it.
func TrackingCodeFromString(s string) (TrackingCode, error) {
	value := strings.ToUpper(strings.TrimSpace(s))
	if value == "" {
		return TrackingCode{}, errs.NewValueIsRequiredError("tracking code")
	}
	if !trackingCodePattern.MatchString(value) {
		return TrackingCode{}, errs.NewValueIsInvalidErrorWithCause(
			"tracking code", fmt.Errorf("%q must be 4-50 characters of A-Z, 0-9 or '-'", s))
	}

	return TrackingCode{
		value: value,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate rejects the zero TrackingCode.
func (c TrackingCode) Validate() error {
	return c.guard.Validate(ErrTrackingCodeIsNotConstructed)
}

// String returns the code as shown to customers.
func (c TrackingCode) String() string {
	return c.value
}

// IsEqual compares two codes.
func (c TrackingCode) IsEqual(other TrackingCode) bool {
	return c.value == other.value
}
