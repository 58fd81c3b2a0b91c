package queries

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// ErrGetActorQueryIsNotConstructed is returned when GetActorQuery is not created via constructor.
var ErrGetActorQueryIsNotConstructed = errors.New(
	"GetActorQuery must be created via NewGetActorQuery constructor",
)

// GetActorQuery resolves a caller id supplied by the transport into an
// actor with its role.
type GetActorQuery struct {
	userID kernel.UUID
	guard  guard.ConstructorGuard
}

// NewGetActorQuery parses the caller id.
// Returns a ValueIsInvalid error when userID is not a UUID.
func NewGetActorQuery(userID string) (GetActorQuery, error) {
	id, err := kernel.UUIDFromString(userID)
	if err != nil {
		return GetActorQuery{}, errs.NewValueIsInvalidErrorWithCause("user_id", err)
	}

	return GetActorQuery{userID: id, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetActorQueryIsNotConstructed if validation fails.
func (q GetActorQuery) Validate() error {
	return q.guard.Validate(ErrGetActorQueryIsNotConstructed)
}

// UserID returns the caller id to resolve.
func (q GetActorQuery) UserID() kernel.UUID {
	return q.userID
}
