package commands_test

import (
	"testing"
	"time"

	"parceltrack/internal/core/domain/model/driver"
	"parceltrack/internal/core/domain/model/job"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"

	"github.com/stretchr/testify/require"
)

// restoreParcel builds a stored parcel in the given state, last touched an
// hour before fixedNow.
func restoreParcel(
	t *testing.T,
	customerID kernel.UUID,
	status parcel.Status,
	currentDriver *kernel.UUID,
	canTrack bool,
) *parcel.Parcel {
	t.Helper()
	at := fixedNow.Add(-time.Hour)
	p, err := parcel.RestoreParcel(kernel.NewUUID(), kernel.NewTrackingCode(), customerID, validDetails(),
		status, currentDriver, canTrack, at, at)
	require.NoError(t, err)
	return p
}

func restoreJob(t *testing.T, p *parcel.Parcel, driverID kernel.UUID, jobType job.Type, status job.Status) *job.Job {
	t.Helper()
	j, err := job.RestoreJob(kernel.NewUUID(), p.ID(), driverID, jobType, status,
		fixedNow.Add(-30*time.Minute), nil, nil, "")
	require.NoError(t, err)
	return j
}

func restoreDriverUser(t *testing.T, actor user.Actor) (*user.User, *driver.Driver) {
	t.Helper()
	u, err := user.RestoreUser(actor.ID(), actor.Name(), actor.Name()+"@example.com", user.RoleDriver,
		user.Profile{}, fixedNow.Add(-24*time.Hour))
	require.NoError(t, err)
	d, err := driver.NewDriver(actor.ID(), "van")
	require.NoError(t, err)
	return u, d
}
