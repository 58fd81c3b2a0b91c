// Package userrepo persists user aggregates.
package userrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO is the row of the users table.
type UserDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username    string    `gorm:"type:varchar(150);not null;uniqueIndex"`
	Email       string    `gorm:"type:varchar(254);not null;uniqueIndex"`
	Role        int       `gorm:"type:smallint;not null"`
	FirstName   string    `gorm:"type:varchar(150);not null"`
	LastName    string    `gorm:"type:varchar(150);not null"`
	PhoneNumber string    `gorm:"type:varchar(20);not null"`
	Address     string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"type:timestamptz;not null;autoCreateTime:false"`
}

// TableName specifies the database table name for user entities.
func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	profile := u.Profile()
	return UserDTO{
		ID:          u.ID().Bytes(),
		Username:    u.Username(),
		Email:       u.Email(),
		Role:        int(u.Role()),
		FirstName:   profile.FirstName,
		LastName:    profile.LastName,
		PhoneNumber: profile.PhoneNumber,
		Address:     profile.Address,
		CreatedAt:   u.CreatedAt(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return user.RestoreUser(id, dto.Username, dto.Email, user.Role(dto.Role), user.Profile{
		FirstName:   dto.FirstName,
		LastName:    dto.LastName,
		PhoneNumber: dto.PhoneNumber,
		Address:     dto.Address,
	}, dto.CreatedAt)
}
