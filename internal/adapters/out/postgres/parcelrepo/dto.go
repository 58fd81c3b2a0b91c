// Package parcelrepo persists parcel aggregates.
package parcelrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO is the row of the parcels table.
type ParcelDTO struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrackingCode         string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID           uuid.UUID  `gorm:"type:uuid;not null;index"`
	PickupAddress        string     `gorm:"type:text;not null"`
	DeliveryAddress      string     `gorm:"type:text;not null"`
	RecipientName        string     `gorm:"type:varchar(255);not null"`
	RecipientPhone       string     `gorm:"type:varchar(20);not null"`
	Description          string     `gorm:"type:text;not null"`
	WeightKg             float64    `gorm:"type:double precision;not null"`
	Dimensions           string     `gorm:"type:varchar(100);not null"`
	ExpectedDeliveryAt   *time.Time `gorm:"type:timestamptz"`
	DeliveryInstructions string     `gorm:"type:text;not null"`
	Status               int        `gorm:"type:smallint;not null"`
	CurrentDriverID      *uuid.UUID `gorm:"type:uuid"`
	CanCustomerTrack     bool       `gorm:"not null"`
	BookedAt             time.Time  `gorm:"type:timestamptz;not null"`
	UpdatedAt            time.Time  `gorm:"type:timestamptz;not null;autoUpdateTime:false"`
}

// TableName specifies the database table name for parcel entities.
func (ParcelDTO) TableName() string {
	return "parcels"
}

func fromDomain(p *parcel.Parcel) ParcelDTO {
	details := p.Details()

	var driverID *uuid.UUID
	if d := p.CurrentDriver(); d != nil {
		raw := d.Bytes()
		driverID = &raw
	}

	return ParcelDTO{
		ID:                   p.ID().Bytes(),
		TrackingCode:         p.TrackingCode().String(),
		CustomerID:           p.CustomerID().Bytes(),
		PickupAddress:        details.PickupAddress,
		DeliveryAddress:      details.DeliveryAddress,
		RecipientName:        details.RecipientName,
		RecipientPhone:       details.RecipientPhone,
		Description:          details.Description,
		WeightKg:             details.WeightKg,
		Dimensions:           details.Dimensions,
		ExpectedDeliveryAt:   details.ExpectedDeliveryAt,
		DeliveryInstructions: details.DeliveryInstructions,
		Status:               int(p.Status()),
		CurrentDriverID:      driverID,
		CanCustomerTrack:     p.CanCustomerTrack(),
		BookedAt:             p.BookedAt(),
		UpdatedAt:            p.UpdatedAt(),
	}
}

func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	code, err := kernel.TrackingCodeFromString(dto.TrackingCode)
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.CurrentDriverID != nil {
		d, driverErr := kernel.UUIDFromBytes((*dto.CurrentDriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &d
	}

	return parcel.RestoreParcel(
		id,
		code,
		customerID,
		parcel.Details{
			PickupAddress:        dto.PickupAddress,
			DeliveryAddress:      dto.DeliveryAddress,
			RecipientName:        dto.RecipientName,
			RecipientPhone:       dto.RecipientPhone,
			Description:          dto.Description,
			WeightKg:             dto.WeightKg,
			Dimensions:           dto.Dimensions,
			ExpectedDeliveryAt:   dto.ExpectedDeliveryAt,
			DeliveryInstructions: dto.DeliveryInstructions,
		},
		parcel.Status(dto.Status),
		driverID,
		dto.CanCustomerTrack,
		dto.BookedAt,
		dto.UpdatedAt,
	)
}
