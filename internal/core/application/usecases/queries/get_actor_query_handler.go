package queries

import (
	"context"
	"database/sql"
	"errors"

	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetActorQueryHandler loads the role of a caller for authorization.
type GetActorQueryHandler struct {
	db *gorm.DB
}

// NewGetActorQueryHandler creates a handler reading the users table.
func NewGetActorQueryHandler(db *gorm.DB) GetActorQueryHandler {
	return GetActorQueryHandler{db: db}
}

// Handle returns the actor for the given user.
// Returns errs.ErrObjectNotFound when the user does not exist.
func (h GetActorQueryHandler) Handle(ctx context.Context, query GetActorQuery) (user.Actor, error) {
	if err := query.Validate(); err != nil {
		return user.Actor{}, err
	}

	var (
		role     int16
		username string
	)

	err := h.db.WithContext(ctx).Raw(`
		SELECT role, username FROM users WHERE id = ?
	`, query.UserID().Bytes()).Row().Scan(&role, &username)
	if errors.Is(err, sql.ErrNoRows) {
		return user.Actor{}, errs.NewObjectNotFoundError("user", query.UserID())
	}
	if err != nil {
		return user.Actor{}, err
	}

	r := user.Role(role)
	if err = r.Validate(); err != nil {
		return user.Actor{}, err
	}

	return user.NewActor(query.UserID(), r, username), nil
}
