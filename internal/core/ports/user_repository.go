package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
)

// UserRepository persists user accounts.
type UserRepository interface {
	// Add stores a new user. A duplicate username or email is reported as
	// a ValueIsInvalidError.
	Add(ctx context.Context, aggregate *user.User) error

	Get(ctx context.Context, id kernel.UUID) (*user.User, error)
}
