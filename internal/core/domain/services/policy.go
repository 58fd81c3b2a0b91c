package services

import (
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
)

// Action names an operation gated by the access policy.
type Action int

const (
	ActionUnknown Action = iota
	ActionBookParcel
	ActionAssignDriver
	ActionAcceptJob
	ActionScanParcel
	ActionCompleteDelivery
	ActionFailJob
	ActionCancelParcel
	ActionUpdateLocation
	ActionReadTracking
	ActionListOwnParcels
	ActionListAllParcels
	ActionListDrivers
	ActionFindNearbyDrivers
	ActionListOwnJobs
	ActionReadNotifications
	ActionMarkNotificationRead
)

func getActionStrings() map[Action]string {
	return map[Action]string{
		ActionUnknown:              "do an unknown action",
		ActionBookParcel:           "book a parcel",
		ActionAssignDriver:         "assign a driver",
		ActionAcceptJob:            "accept this job",
		ActionScanParcel:           "scan this parcel",
		ActionCompleteDelivery:     "complete this delivery",
		ActionFailJob:              "fail this job",
		ActionCancelParcel:         "cancel a parcel",
		ActionUpdateLocation:       "update this driver's location",
		ActionReadTracking:         "read this parcel's tracking",
		ActionListOwnParcels:       "list own parcels",
		ActionListAllParcels:       "list all parcels",
		ActionListDrivers:          "list drivers",
		ActionFindNearbyDrivers:    "search nearby drivers",
		ActionListOwnJobs:          "list own jobs",
		ActionReadNotifications:    "read these notifications",
		ActionMarkNotificationRead: "mark this notification as read",
	}
}

// String returns the action phrased for error messages.
func (a Action) String() string {
	if s, ok := getActionStrings()[a]; ok {
		return s
	}
	return getActionStrings()[ActionUnknown]
}

// Target describes the entity an action is aimed at. Owner is the user the
// entity belongs to (parcel customer, notification recipient, booking
// customer). Driver is the driver bound to it (job driver, driver profile).
type Target struct {
	Owner  *kernel.UUID
	Driver *kernel.UUID
}

// OwnedBy is the target of actions on a user's own data.
func OwnedBy(id kernel.UUID) Target {
	return Target{Owner: &id}
}

// BoundTo is the target of actions on a driver's job or profile.
func BoundTo(driverID kernel.UUID) Target {
	return Target{Driver: &driverID}
}

type rule func(actor user.Actor, target Target) bool

func always(user.Actor, Target) bool { return true }

func isOwner(actor user.Actor, target Target) bool {
	return target.Owner != nil && actor.Is(*target.Owner)
}

func isBoundDriver(actor user.Actor, target Target) bool {
	return target.Driver != nil && actor.Is(*target.Driver)
}

// AccessPolicy is a pure (action, role) dispatch table. A missing entry
// means the role may never perform the action.
type AccessPolicy struct {
	rules map[Action]map[user.Role]rule
}

// NewAccessPolicy creates the policy with the fixed rule table.
func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{
		rules: map[Action]map[user.Role]rule{
			ActionBookParcel:        {user.RoleCustomer: isOwner},
			ActionAssignDriver:      {user.RoleController: always},
			ActionAcceptJob:         {user.RoleDriver: isBoundDriver},
			ActionScanParcel:        {user.RoleDriver: isBoundDriver},
			ActionCompleteDelivery:  {user.RoleDriver: isBoundDriver},
			ActionFailJob:           {user.RoleDriver: isBoundDriver, user.RoleController: always},
			ActionCancelParcel:      {user.RoleController: always},
			ActionUpdateLocation:    {user.RoleDriver: isBoundDriver},
			ActionListOwnParcels:    {user.RoleCustomer: always},
			ActionListAllParcels:    {user.RoleController: always},
			ActionListDrivers:       {user.RoleController: always},
			ActionFindNearbyDrivers: {user.RoleController: always},
			ActionListOwnJobs:       {user.RoleDriver: always},
			ActionReadTracking: {
				user.RoleCustomer:   isOwner,
				user.RoleController: always,
				user.RoleDriver:     always,
				user.RoleUnknown:    always,
			},
			ActionReadNotifications: {
				user.RoleCustomer:   isOwner,
				user.RoleController: isOwner,
				user.RoleDriver:     isOwner,
			},
			ActionMarkNotificationRead: {
				user.RoleCustomer:   isOwner,
				user.RoleController: isOwner,
				user.RoleDriver:     isOwner,
			},
		},
	}
}

// Allowed evaluates the rule for the actor's role.
func (p AccessPolicy) Allowed(actor user.Actor, action Action, target Target) bool {
	role := actor.Role()
	if actor.IsAnonymous() {
		role = user.RoleUnknown
	}
	check, ok := p.rules[action][role]
	return ok && check(actor, target)
}

// Authorize is Allowed returning an UnauthorizedError on rejection.
func (p AccessPolicy) Authorize(actor user.Actor, action Action, target Target) error {
	if !p.Allowed(actor, action, target) {
		return errs.NewUnauthorizedError(actor.String(), action.String())
	}
	return nil
}

// AuthorizeTrackingRead combines the role rule with the parcel's tracking
// gate. Controllers and drivers always pass. The owning customer and
// anonymous readers pass only once the gate is open. Other customers are
// rejected outright.
func (p AccessPolicy) AuthorizeTrackingRead(
	actor user.Actor,
	owner kernel.UUID,
	canCustomerTrack bool,
	trackingCode string,
) error {
	if err := p.Authorize(actor, ActionReadTracking, OwnedBy(owner)); err != nil {
		return err
	}

	role := actor.Role()
	if actor.IsAnonymous() || role == user.RoleCustomer {
		if !canCustomerTrack {
			return errs.NewTrackingNotAvailableError(trackingCode)
		}
	}
	return nil
}
