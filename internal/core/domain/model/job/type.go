package job

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// Type distinguishes the pickup leg from the delivery leg of a parcel.
type Type int

const (
	TypeUnknown Type = iota
	TypePickup
	TypeDelivery
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown:  "unknown",
		TypePickup:   "pickup",
		TypeDelivery: "delivery",
	}
}

// ParseType maps "pickup" and "delivery" to their Type.
func ParseType(s string) (Type, error) {
	switch s {
	case "pickup":
		return TypePickup, nil
	case "delivery":
		return TypeDelivery, nil
	default:
		return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("job type", fmt.Errorf("%q is not a valid job type", s))
	}
}

// Validate rejects TypeUnknown.
func (t Type) Validate() error {
	if t != TypePickup && t != TypeDelivery {
		return errs.NewValueIsInvalidErrorWithCause("job type", fmt.Errorf("%d is not a valid job type", t))
	}
	return nil
}

// String returns the persisted name of the type.
func (t Type) String() string {
	if s, ok := getTypeStrings()[t]; ok {
		return s
	}
	return "unknown"
}

// Title is the capitalised name used in notification titles.
func (t Type) Title() string {
	switch t {
	case TypePickup:
		return "Pickup"
	case TypeDelivery:
		return "Delivery"
	default:
		return "Unknown"
	}
}
