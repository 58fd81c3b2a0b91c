package services_test

import (
	"testing"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessPolicy_Allowed(t *testing.T) {
	policy := services.NewAccessPolicy()

	customer := user.NewActor(kernel.NewUUID(), user.RoleCustomer, "carol")
	controller := user.NewActor(kernel.NewUUID(), user.RoleController, "ctl")
	driver := user.NewActor(kernel.NewUUID(), user.RoleDriver, "dave")
	otherDriver := user.NewActor(kernel.NewUUID(), user.RoleDriver, "dan")

	tests := []struct {
		name   string
		actor  user.Actor
		action services.Action
		target services.Target
		want   bool
	}{
		{"customer books for self", customer, services.ActionBookParcel, services.OwnedBy(customer.ID()), true},
		{"customer books for someone else", customer, services.ActionBookParcel, services.OwnedBy(kernel.NewUUID()), false},
		{"controller cannot book", controller, services.ActionBookParcel, services.OwnedBy(controller.ID()), false},
		{"controller assigns", controller, services.ActionAssignDriver, services.Target{}, true},
		{"driver cannot assign", driver, services.ActionAssignDriver, services.Target{}, false},
		{"bound driver accepts", driver, services.ActionAcceptJob, services.BoundTo(driver.ID()), true},
		{"other driver accepts", otherDriver, services.ActionAcceptJob, services.BoundTo(driver.ID()), false},
		{"controller cannot scan", controller, services.ActionScanParcel, services.BoundTo(driver.ID()), false},
		{"bound driver completes", driver, services.ActionCompleteDelivery, services.BoundTo(driver.ID()), true},
		{"controller fails job", controller, services.ActionFailJob, services.BoundTo(driver.ID()), true},
		{"bound driver fails job", driver, services.ActionFailJob, services.BoundTo(driver.ID()), true},
		{"other driver fails job", otherDriver, services.ActionFailJob, services.BoundTo(driver.ID()), false},
		{"customer cannot cancel", customer, services.ActionCancelParcel, services.Target{}, false},
		{"driver updates own location", driver, services.ActionUpdateLocation, services.BoundTo(driver.ID()), true},
		{"driver updates foreign location", otherDriver, services.ActionUpdateLocation, services.BoundTo(driver.ID()), false},
		{"customer lists drivers", customer, services.ActionListDrivers, services.Target{}, false},
		{"controller finds nearby drivers", controller, services.ActionFindNearbyDrivers, services.Target{}, true},
		{"driver lists own jobs", driver, services.ActionListOwnJobs, services.Target{}, true},
		{"user reads own notifications", driver, services.ActionReadNotifications, services.OwnedBy(driver.ID()), true},
		{"user marks foreign notification", customer, services.ActionMarkNotificationRead, services.OwnedBy(driver.ID()), false},
		{"anonymous cannot book", user.Anonymous(), services.ActionBookParcel, services.Target{}, false},
		{"unknown action", controller, services.ActionUnknown, services.Target{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Allowed(tt.actor, tt.action, tt.target))
		})
	}
}

func TestAccessPolicy_Authorize(t *testing.T) {
	policy := services.NewAccessPolicy()
	driver := user.NewActor(kernel.NewUUID(), user.RoleDriver, "dave")

	err := policy.Authorize(driver, services.ActionCancelParcel, services.Target{})

	require.ErrorIs(t, err, errs.ErrUnauthorized)
	assert.Contains(t, err.Error(), "cancel a parcel")
}

func TestAccessPolicy_AuthorizeTrackingRead(t *testing.T) {
	policy := services.NewAccessPolicy()
	owner := kernel.NewUUID()

	customer := user.NewActor(owner, user.RoleCustomer, "carol")
	stranger := user.NewActor(kernel.NewUUID(), user.RoleCustomer, "eve")
	controller := user.NewActor(kernel.NewUUID(), user.RoleController, "ctl")
	driver := user.NewActor(kernel.NewUUID(), user.RoleDriver, "dave")

	tests := []struct {
		name    string
		actor   user.Actor
		gate    bool
		wantErr error
	}{
		{"owner, gate closed", customer, false, errs.ErrTrackingNotAvailable},
		{"owner, gate open", customer, true, nil},
		{"anonymous, gate closed", user.Anonymous(), false, errs.ErrTrackingNotAvailable},
		{"anonymous, gate open", user.Anonymous(), true, nil},
		{"controller, gate closed", controller, false, nil},
		{"driver, gate closed", driver, false, nil},
		{"other customer, gate open", stranger, true, errs.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.AuthorizeTrackingRead(tt.actor, owner, tt.gate, "AB12CD34")

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
