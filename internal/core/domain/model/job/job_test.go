package job_test

import (
	"testing"
	"time"

	"parceltrack/internal/core/domain/model/job"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var assignedAt = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

func newJob(t *testing.T, jobType job.Type) *job.Job {
	t.Helper()
	j, err := job.NewJob(kernel.NewUUID(), kernel.NewUUID(), jobType, assignedAt)
	require.NoError(t, err)
	return j
}

func TestNewJob(t *testing.T) {
	parcelID := kernel.NewUUID()
	driverID := kernel.NewUUID()

	j, err := job.NewJob(parcelID, driverID, job.TypePickup, assignedAt)

	require.NoError(t, err)
	require.NoError(t, j.Validate())
	assert.True(t, j.ParcelID().IsEqual(parcelID))
	assert.True(t, j.IsAssignedTo(driverID))
	assert.False(t, j.IsAssignedTo(kernel.NewUUID()))
	assert.Equal(t, job.TypePickup, j.Type())
	assert.Equal(t, job.StatusAssigned, j.Status())
	assert.True(t, j.IsOpen())
	assert.Nil(t, j.AcceptedAt())
	assert.Nil(t, j.CompletedAt())
}

func TestNewJob_Validation(t *testing.T) {
	j, err := job.NewJob(kernel.UUID{}, kernel.UUID{}, job.TypeUnknown, assignedAt)

	require.Error(t, err)
	assert.Nil(t, j)
	assert.True(t, errs.IsValidation(err))
	assert.Contains(t, err.Error(), "parcel")
	assert.Contains(t, err.Error(), "driver")
	assert.Contains(t, err.Error(), "job type")
}

func TestJob_AcceptScanComplete(t *testing.T) {
	j := newJob(t, job.TypeDelivery)
	acceptedAt := assignedAt.Add(time.Minute)
	doneAt := assignedAt.Add(time.Hour)

	require.NoError(t, j.Accept(acceptedAt))
	assert.Equal(t, acceptedAt, *j.AcceptedAt())

	require.NoError(t, j.Start())
	assert.Equal(t, job.StatusEnRoute, j.Status())

	require.NoError(t, j.Complete(doneAt, " left with neighbour "))
	assert.Equal(t, job.StatusCompleted, j.Status())
	assert.Equal(t, doneAt, *j.CompletedAt())
	assert.Equal(t, "left with neighbour", j.Notes())
	assert.False(t, j.IsOpen())
}

func TestJob_ScanWithoutAccept(t *testing.T) {
	j := newJob(t, job.TypePickup)

	require.NoError(t, j.Start())

	assert.Equal(t, job.StatusEnRoute, j.Status())
}

func TestJob_InvalidTransitions(t *testing.T) {
	t.Run("re-accepting", func(t *testing.T) {
		j := newJob(t, job.TypePickup)
		require.NoError(t, j.Accept(assignedAt))

		err := j.Accept(assignedAt)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, job.StatusAccepted, j.Status())
	})

	t.Run("completing before scan", func(t *testing.T) {
		j := newJob(t, job.TypeDelivery)

		err := j.Complete(assignedAt, "")

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, job.StatusAssigned, j.Status())
	})

	t.Run("completing a pickup job", func(t *testing.T) {
		j := newJob(t, job.TypePickup)
		require.NoError(t, j.Start())

		err := j.Complete(assignedAt, "")

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Contains(t, err.Error(), "only delivery jobs")
		assert.Equal(t, job.StatusEnRoute, j.Status())
	})

	t.Run("scanning a closed job", func(t *testing.T) {
		j := newJob(t, job.TypeDelivery)
		require.NoError(t, j.Fail("no access"))

		err := j.Start()

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, job.StatusFailed, j.Status())
	})

	t.Run("handing over a delivery job", func(t *testing.T) {
		j := newJob(t, job.TypeDelivery)
		require.NoError(t, j.Start())

		require.ErrorIs(t, j.HandOver(assignedAt), errs.ErrInvalidTransition)
	})
}

func TestJob_HandOver(t *testing.T) {
	j := newJob(t, job.TypePickup)

	require.ErrorIs(t, j.HandOver(assignedAt), errs.ErrInvalidTransition, "pickup must be en route")

	require.NoError(t, j.Start())
	require.NoError(t, j.HandOver(assignedAt.Add(time.Hour)))
	assert.Equal(t, job.StatusCompleted, j.Status())
}

func TestJob_Fail(t *testing.T) {
	for _, prepare := range []func(*job.Job) error{
		func(*job.Job) error { return nil },
		func(j *job.Job) error { return j.Accept(assignedAt) },
		func(j *job.Job) error { return j.Start() },
	} {
		j := newJob(t, job.TypeDelivery)
		require.NoError(t, prepare(j))

		require.NoError(t, j.Fail(" recipient absent "))

		assert.Equal(t, job.StatusFailed, j.Status())
		assert.Equal(t, "recipient absent", j.Notes())
		require.ErrorIs(t, j.Fail(""), errs.ErrInvalidTransition)
	}
}

func TestParseTypeAndStatus(t *testing.T) {
	typ, err := job.ParseType("delivery")
	require.NoError(t, err)
	assert.Equal(t, job.TypeDelivery, typ)
	assert.Equal(t, "Delivery", typ.Title())

	_, err = job.ParseType("return")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	status, err := job.ParseStatus("en_route")
	require.NoError(t, err)
	assert.Equal(t, job.StatusEnRoute, status)

	_, err = job.ParseStatus("paused")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
