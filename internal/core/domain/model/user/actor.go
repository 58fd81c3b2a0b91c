package user

import "parceltrack/internal/core/domain/model/kernel"

// Actor is the resolved caller of an operation. It is passed explicitly to
// every command and query. The zero Actor is the anonymous public caller.
type Actor struct {
	id   kernel.UUID
	role Role
	name string
}

// NewActor builds a resolved caller. name is the username written into
// audit notes.
func NewActor(id kernel.UUID, role Role, name string) Actor {
	return Actor{id: id, role: role, name: name}
}

// Anonymous returns the caller used by public tracking lookups.
func Anonymous() Actor {
	return Actor{}
}

// ID returns the caller's user id. It is the zero UUID for anonymous callers.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the caller's role.
func (a Actor) Role() Role {
	return a.role
}

// Name returns the username used in audit notes.
func (a Actor) Name() string {
	return a.name
}

// IsAnonymous reports whether the caller is not signed in.
func (a Actor) IsAnonymous() bool {
	return a.role == RoleUnknown || a.id.Validate() != nil
}

// Is reports whether the actor is the user with the given id.
func (a Actor) Is(id kernel.UUID) bool {
	return !a.IsAnonymous() && a.id.IsEqual(id)
}

// String renders the actor for errors and logs.
func (a Actor) String() string {
	if a.IsAnonymous() {
		return "anonymous"
	}
	return a.role.String() + " " + a.id.String()
}
