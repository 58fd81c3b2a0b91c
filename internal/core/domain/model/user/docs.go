// Package user models the people who interact with the parcel service and
// the role-tagged Actor that every operation receives explicitly.
package user
