package services

import (
	"fmt"
	"strings"

	"parceltrack/internal/core/domain/model/job"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
)

const defaultDeliveryNotes = "Package delivered"

// Emission is the audit text of one transition and the notice it raises,
// if any.
type Emission struct {
	Label  string
	Notes  string
	Notice *Notice
}

// Notice is the content of a notification before it is stamped and stored.
type Notice struct {
	RecipientID kernel.UUID
	Title       string
	Message     string
}

// Emitter produces the fixed audit labels and notification texts of every
// parcel transition. It is deterministic: the same inputs always give the
// same texts.
type Emitter struct{}

// NewEmitter creates the emitter. It holds no state.
func NewEmitter() Emitter {
	return Emitter{}
}

// ParcelBooked confirms the booking to the customer.
func (Emitter) ParcelBooked(p *parcel.Parcel) Emission {
	return Emission{
		Label: "Order placed",
		Notes: "Parcel booking confirmed",
		Notice: &Notice{
			RecipientID: p.CustomerID(),
			Title:       "Parcel Booked Successfully",
			Message:     fmt.Sprintf("Your parcel with tracking number %s has been booked.", p.TrackingCode()),
		},
	}
}

// DriverAssigned notifies the assigned driver of the new job.
func (Emitter) DriverAssigned(p *parcel.Parcel, driverID kernel.UUID, driverName string, jobType job.Type) Emission {
	return Emission{
		Label: fmt.Sprintf("Assigned to driver for %s", jobType),
		Notes: fmt.Sprintf("Driver %s assigned for %s", driverName, jobType),
		Notice: &Notice{
			RecipientID: driverID,
			Title:       fmt.Sprintf("New %s Job Assigned", jobType.Title()),
			Message:     fmt.Sprintf("You have been assigned a %s job for parcel %s", jobType, p.TrackingCode()),
		},
	}
}

// JobAccepted is audit only and raises no notice.
func (Emitter) JobAccepted(j *job.Job, driverName string) Emission {
	return Emission{
		Label: fmt.Sprintf("Driver accepted %s job", j.Type()),
		Notes: fmt.Sprintf("Driver %s accepted the job", driverName),
	}
}

// ParcelScanned labels the scan by leg and tells the customer.
func (Emitter) ParcelScanned(p *parcel.Parcel, j *job.Job, driverName string) Emission {
	label := "Parcel scanned for delivery"
	if j.Type() == job.TypePickup {
		label = "Parcel collected and scanned"
	}

	return Emission{
		Label: label,
		Notes: fmt.Sprintf("Parcel scanned by driver %s", driverName),
		Notice: &Notice{
			RecipientID: p.CustomerID(),
			Title:       "Parcel Status Update",
			Message:     fmt.Sprintf("Your parcel %s has been %s", p.TrackingCode(), strings.ToLower(label)),
		},
	}
}

// DeliveryCompleted falls back to a default note when the driver left none.
func (Emitter) DeliveryCompleted(p *parcel.Parcel, notes string) Emission {
	if strings.TrimSpace(notes) == "" {
		notes = defaultDeliveryNotes
	}

	return Emission{
		Label: "Delivered successfully",
		Notes: notes,
		Notice: &Notice{
			RecipientID: p.CustomerID(),
			Title:       "Parcel Delivered",
			Message:     fmt.Sprintf("Your parcel %s has been delivered successfully", p.TrackingCode()),
		},
	}
}

// JobFailed notifies the customer only when the delivery leg failed; a
// failed pickup is an internal matter for dispatch.
func (Emitter) JobFailed(p *parcel.Parcel, j *job.Job, actorName, reason string) Emission {
	notes := fmt.Sprintf("%s job failed, reported by %s", j.Type().Title(), actorName)
	if reason = strings.TrimSpace(reason); reason != "" {
		notes = fmt.Sprintf("%s: %s", notes, reason)
	}

	e := Emission{
		Label: fmt.Sprintf("%s failed", j.Type().Title()),
		Notes: notes,
	}
	if j.Type() == job.TypeDelivery {
		e.Notice = &Notice{
			RecipientID: p.CustomerID(),
			Title:       "Delivery Failed",
			Message:     fmt.Sprintf("We could not deliver your parcel %s", p.TrackingCode()),
		}
	}
	return e
}

// ParcelCancelled tells the customer, appending the reason when given.
func (Emitter) ParcelCancelled(p *parcel.Parcel, actorName, reason string) Emission {
	notes := fmt.Sprintf("Cancelled by %s", actorName)
	if reason = strings.TrimSpace(reason); reason != "" {
		notes = fmt.Sprintf("%s: %s", notes, reason)
	}

	return Emission{
		Label: "Parcel cancelled",
		Notes: notes,
		Notice: &Notice{
			RecipientID: p.CustomerID(),
			Title:       "Parcel Cancelled",
			Message:     fmt.Sprintf("Your parcel %s has been cancelled", p.TrackingCode()),
		},
	}
}
