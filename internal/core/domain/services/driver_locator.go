package services

import (
	"sort"

	"parceltrack/internal/core/domain/model/driver"
	"parceltrack/internal/core/domain/model/kernel"
)

// RankedDriver is a driver together with its distance from the search
// center.
type RankedDriver struct {
	Driver     *driver.Driver
	DistanceKm float64
}

// DriverLocator is a domain service that ranks drivers by great-circle
// distance from a point.
//
// Business rules:
//   - only available drivers with a reported position are considered
//   - drivers farther than the radius are dropped
//   - nearest first; ties keep the input order
//
// Example usage:
//
//	locator := NewDriverLocator()
//	ranked, err := locator.Nearest(center, 5, drivers, 10)
//	if err != nil {
//	    return err
//	}
//	for _, r := range ranked {
//	    fmt.Println(r.Driver.UserID(), r.DistanceKm)
//	}
type DriverLocator struct{}

// NewDriverLocator creates a stateless locator.
func NewDriverLocator() DriverLocator {
	return DriverLocator{}
}

// Nearest returns at most limit drivers within radiusKm of center. A limit
// of zero or less returns every match.
func (DriverLocator) Nearest(
	center kernel.Location,
	radiusKm float64,
	drivers []*driver.Driver,
	limit int,
) ([]RankedDriver, error) {
	if err := center.Validate(); err != nil {
		return nil, err
	}

	ranked := make([]RankedDriver, 0, len(drivers))
	for _, d := range drivers {
		if err := d.Validate(); err != nil {
			return nil, err
		}

		loc := d.Location()
		if !d.IsAvailable() || loc == nil {
			continue
		}

		dist := center.DistanceKm(*loc)
		if dist > radiusKm {
			continue
		}
		ranked = append(ranked, RankedDriver{Driver: d, DistanceKm: dist})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}
