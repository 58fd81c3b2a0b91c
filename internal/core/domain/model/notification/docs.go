// Package notification holds the Notification entity emitted by parcel
// transitions.
package notification
