package http

import (
	"time"

	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/job"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/notification"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
)

// NewUser is the registration request body.
type NewUser struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	PhoneNumber    string `json:"phone_number"`
	Address        string `json:"address"`
	VehicleDetails string `json:"vehicle_details"`
}

// NewParcel is the booking request body.
type NewParcel struct {
	PickupAddress        string     `json:"pickup_address"`
	DeliveryAddress      string     `json:"delivery_address"`
	RecipientName        string     `json:"recipient_name"`
	RecipientPhone       string     `json:"recipient_phone"`
	Description          string     `json:"description"`
	WeightKg             float64    `json:"weight_kg"`
	Dimensions           string     `json:"dimensions"`
	ExpectedDeliveryAt   *time.Time `json:"expected_delivery_at"`
	DeliveryInstructions string     `json:"delivery_instructions"`
}

func (p NewParcel) details() parcel.Details {
	return parcel.Details{
		PickupAddress:        p.PickupAddress,
		DeliveryAddress:      p.DeliveryAddress,
		RecipientName:        p.RecipientName,
		RecipientPhone:       p.RecipientPhone,
		Description:          p.Description,
		WeightKg:             p.WeightKg,
		Dimensions:           p.Dimensions,
		ExpectedDeliveryAt:   p.ExpectedDeliveryAt,
		DeliveryInstructions: p.DeliveryInstructions,
	}
}

// Assignment is the body of a driver assignment. JobType is "pickup" or "delivery".
type Assignment struct {
	DriverID string `json:"driver_id"`
	JobType  string `json:"job_type"`
}

// Reason carries the optional reason of a cancellation or a failed job.
type Reason struct {
	Reason string `json:"reason"`
}

// Completion is the body of a completed delivery.
type Completion struct {
	Notes     string   `json:"notes"`
	ProofRefs []string `json:"proof_refs"`
}

// Location is a point in decimal degrees.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func toLocation(l *kernel.Location) *Location {
	if l == nil {
		return nil
	}
	return &Location{Latitude: l.Latitude(), Longitude: l.Longitude()}
}

func toOptionalID(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

// User is the public representation of an account.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

func toUser(u *user.User) User {
	return User{
		ID:        u.ID().String(),
		Username:  u.Username(),
		Email:     u.Email(),
		Role:      u.Role().String(),
		FullName:  u.FullName(),
		CreatedAt: u.CreatedAt(),
	}
}

// Parcel is the response representation of a parcel.
type Parcel struct {
	ID                 string     `json:"id"`
	TrackingCode       string     `json:"tracking_code"`
	CustomerID         string     `json:"customer_id"`
	Status             string     `json:"status"`
	StatusLabel        string     `json:"status_label"`
	CurrentDriverID    *string    `json:"current_driver_id,omitempty"`
	CanCustomerTrack   bool       `json:"can_customer_track"`
	PickupAddress      string     `json:"pickup_address"`
	DeliveryAddress    string     `json:"delivery_address"`
	RecipientName      string     `json:"recipient_name"`
	BookedAt           time.Time  `json:"booked_at"`
	ExpectedDeliveryAt *time.Time `json:"expected_delivery_at,omitempty"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func toParcel(p *parcel.Parcel) Parcel {
	d := p.Details()
	return Parcel{
		ID:                 p.ID().String(),
		TrackingCode:       p.TrackingCode().String(),
		CustomerID:         p.CustomerID().String(),
		Status:             p.Status().String(),
		StatusLabel:        p.Status().Label(),
		CurrentDriverID:    toOptionalID(p.CurrentDriver()),
		CanCustomerTrack:   p.CanCustomerTrack(),
		PickupAddress:      d.PickupAddress,
		DeliveryAddress:    d.DeliveryAddress,
		RecipientName:      d.RecipientName,
		BookedAt:           p.BookedAt(),
		ExpectedDeliveryAt: d.ExpectedDeliveryAt,
		UpdatedAt:          p.UpdatedAt(),
	}
}

func toParcelSummaries(rows []queries.ParcelSummary) []Parcel {
	out := make([]Parcel, len(rows))
	for i, r := range rows {
		out[i] = Parcel{
			ID:                 r.ID.String(),
			TrackingCode:       r.TrackingCode,
			CustomerID:         r.CustomerID.String(),
			Status:             r.Status.String(),
			StatusLabel:        r.Status.Label(),
			CurrentDriverID:    toOptionalID(r.CurrentDriverID),
			CanCustomerTrack:   r.CanCustomerTrack,
			PickupAddress:      r.PickupAddress,
			DeliveryAddress:    r.DeliveryAddress,
			RecipientName:      r.RecipientName,
			BookedAt:           r.BookedAt,
			ExpectedDeliveryAt: r.ExpectedDeliveryAt,
			UpdatedAt:          r.UpdatedAt,
		}
	}
	return out
}

// Job is the response representation of a pickup or delivery job.
type Job struct {
	ID          string     `json:"id"`
	ParcelID    string     `json:"parcel_id"`
	DriverID    string     `json:"driver_id,omitempty"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	AssignedAt  time.Time  `json:"assigned_at"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

func toJob(j *job.Job) Job {
	return Job{
		ID:          j.ID().String(),
		ParcelID:    j.ParcelID().String(),
		DriverID:    j.DriverID().String(),
		Type:        j.Type().String(),
		Status:      j.Status().String(),
		AssignedAt:  j.AssignedAt(),
		AcceptedAt:  j.AcceptedAt(),
		CompletedAt: j.CompletedAt(),
		Notes:       j.Notes(),
	}
}

// DriverJob is a job as listed to the driver bound to it.
type DriverJob struct {
	Job
	TrackingCode         string `json:"tracking_code"`
	ParcelStatus         string `json:"parcel_status"`
	PickupAddress        string `json:"pickup_address"`
	DeliveryAddress      string `json:"delivery_address"`
	RecipientName        string `json:"recipient_name"`
	RecipientPhone       string `json:"recipient_phone"`
	DeliveryInstructions string `json:"delivery_instructions,omitempty"`
}

func toDriverJobs(rows []queries.JobView) []DriverJob {
	out := make([]DriverJob, len(rows))
	for i, r := range rows {
		out[i] = DriverJob{
			Job: Job{
				ID:          r.ID.String(),
				ParcelID:    r.ParcelID.String(),
				Type:        r.Type.String(),
				Status:      r.Status.String(),
				AssignedAt:  r.AssignedAt,
				AcceptedAt:  r.AcceptedAt,
				CompletedAt: r.CompletedAt,
				Notes:       r.Notes,
			},
			TrackingCode:         r.TrackingCode,
			ParcelStatus:         r.ParcelStatus.String(),
			PickupAddress:        r.PickupAddress,
			DeliveryAddress:      r.DeliveryAddress,
			RecipientName:        r.RecipientName,
			RecipientPhone:       r.RecipientPhone,
			DeliveryInstructions: r.DeliveryInstructions,
		}
	}
	return out
}

// Driver is a roster entry.
type Driver struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	FullName       string    `json:"full_name"`
	PhoneNumber    string    `json:"phone_number,omitempty"`
	VehicleDetails string    `json:"vehicle_details,omitempty"`
	Location       *Location `json:"location,omitempty"`
	Available      bool      `json:"available"`
}

func toDrivers(rows []queries.DriverView) []Driver {
	out := make([]Driver, len(rows))
	for i, r := range rows {
		out[i] = Driver{
			ID:             r.ID.String(),
			Username:       r.Username,
			FullName:       r.FullName,
			PhoneNumber:    r.PhoneNumber,
			VehicleDetails: r.VehicleDetails,
			Location:       toLocation(r.Location),
			Available:      r.Available,
		}
	}
	return out
}

// NearbyDriver is a proximity search result.
type NearbyDriver struct {
	ID             string   `json:"id"`
	Username       string   `json:"username"`
	FullName       string   `json:"full_name"`
	VehicleDetails string   `json:"vehicle_details,omitempty"`
	Location       Location `json:"location"`
	DistanceKm     float64  `json:"distance_km"`
}

func toNearbyDrivers(rows []queries.NearbyDriverView) []NearbyDriver {
	out := make([]NearbyDriver, len(rows))
	for i, r := range rows {
		out[i] = NearbyDriver{
			ID:             r.ID.String(),
			Username:       r.Username,
			FullName:       r.FullName,
			VehicleDetails: r.VehicleDetails,
			Location:       *toLocation(&r.Location),
			DistanceKm:     r.DistanceKm,
		}
	}
	return out
}

// Notification is an inbox entry.
type Notification struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	IsRead       bool      `json:"is_read"`
	ParcelID     *string   `json:"parcel_id,omitempty"`
	TrackingCode string    `json:"tracking_code,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func toNotification(n *notification.Notification) Notification {
	return Notification{
		ID:        n.ID().String(),
		Title:     n.Title(),
		Message:   n.Message(),
		IsRead:    n.IsRead(),
		ParcelID:  toOptionalID(n.ParcelID()),
		CreatedAt: n.CreatedAt(),
	}
}

func toNotifications(rows []queries.NotificationView) []Notification {
	out := make([]Notification, len(rows))
	for i, r := range rows {
		out[i] = Notification{
			ID:           r.ID.String(),
			Title:        r.Title,
			Message:      r.Message,
			IsRead:       r.IsRead,
			ParcelID:     toOptionalID(r.ParcelID),
			TrackingCode: r.TrackingCode,
			CreatedAt:    r.CreatedAt,
		}
	}
	return out
}
