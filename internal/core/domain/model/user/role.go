package user

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// Role is the fixed capability set of a user. It is assigned at
// registration and never changes.
type Role int

const (
	// RoleUnknown (0) marks an uninitialised role and the anonymous caller.
	RoleUnknown Role = iota
	RoleCustomer
	RoleController
	RoleDriver
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:    "unknown",
		RoleCustomer:   "customer",
		RoleController: "controller",
		RoleDriver:     "driver",
	}
}

// ParseRole maps the persisted/transport name back to a Role.
func ParseRole(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if role != RoleUnknown && name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// Validate rejects RoleUnknown and out-of-range values.
func (r Role) Validate() error {
	if r <= RoleUnknown || r > RoleDriver {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the persisted name of the role.
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}
