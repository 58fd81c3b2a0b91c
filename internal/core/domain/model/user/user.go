package user

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

const maxUsernameLength = 150

var (
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser constructor")

	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
)

// Profile holds the optional contact details of a user.
type Profile struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Address     string
}

// User is a registered person acting as customer, controller or driver.
//
// Invariants:
//   - username matches [\w.@+-]+ and is at most 150 characters
//   - email is a valid address
//   - role is set at construction and has no setter
type User struct {
	id        kernel.UUID
	username  string
	email     string
	role      Role
	profile   Profile
	createdAt time.Time
	guard     guard.ConstructorGuard
}

// NewUser registers a new user with a fresh identifier.
//
// Example:
//
//	u, err := user.NewUser("jdoe", "jdoe@example.com", user.RoleCustomer, user.Profile{}, clock.Now())
func NewUser(username, email string, role Role, profile Profile, createdAt time.Time) (*User, error) {
	return RestoreUser(kernel.NewUUID(), username, email, role, profile, createdAt)
}

// RestoreUser rebuilds a user loaded from storage.
func RestoreUser(
	id kernel.UUID,
	username, email string,
	role Role,
	profile Profile,
	createdAt time.Time,
) (*User, error) {
	u := &User{
		profile:   normalizeProfile(profile),
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setUsername(username),
		u.setEmail(email),
		u.setRole(role),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// Validate ensures the user was created through a constructor.
// Returns ErrUserIsNotConstructed if validation fails.
func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

// ID returns the unique identifier of the user.
func (u *User) ID() kernel.UUID {
	return u.id
}

// Username returns the login name.
func (u *User) Username() string {
	return u.username
}

// Email returns the contact address.
func (u *User) Email() string {
	return u.email
}

// Role returns the fixed role of the user.
func (u *User) Role() Role {
	return u.role
}

// Profile returns the optional contact details.
func (u *User) Profile() Profile {
	return u.profile
}

// CreatedAt returns the registration time.
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// Actor returns the caller identity of this user.
func (u *User) Actor() Actor {
	return NewActor(u.id, u.role, u.username)
}

// FullName joins first and last name, falling back to the username.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.profile.FirstName + " " + u.profile.LastName)
	if name == "" {
		return u.username
	}
	return name
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errs.NewValueIsRequiredError("username")
	}
	if len(username) > maxUsernameLength || !usernamePattern.MatchString(username) {
		return errs.NewValueIsInvalidErrorWithCause("username",
			fmt.Errorf("%q must be 1-%d letters, digits or @.+-_", username, maxUsernameLength))
	}
	u.username = username
	return nil
}

func (u *User) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not a valid address", email))
	}
	u.email = strings.ToLower(email)
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}

func normalizeProfile(p Profile) Profile {
	return Profile{
		FirstName:   strings.TrimSpace(p.FirstName),
		LastName:    strings.TrimSpace(p.LastName),
		PhoneNumber: strings.TrimSpace(p.PhoneNumber),
		Address:     strings.TrimSpace(p.Address),
	}
}
