package queries_test

import (
	"testing"

	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func controller() user.Actor {
	return user.NewActor(kernel.NewUUID(), user.RoleController, "ops")
}

func TestNewGetTrackingHistoryQuery_NormalisesCode(t *testing.T) {
	query, err := queries.NewGetTrackingHistoryQuery(user.Anonymous(), "  ab12cd34 ")

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, "AB12CD34", query.TrackingCode().String())
	assert.True(t, query.Actor().IsAnonymous())
}

func TestNewGetTrackingHistoryQuery_RejectsBadCodes(t *testing.T) {
	_, err := queries.NewGetTrackingHistoryQuery(user.Anonymous(), "   ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.NewGetTrackingHistoryQuery(user.Anonymous(), "no spaces!")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewListAllParcelsQuery(t *testing.T) {
	testCases := []struct {
		name       string
		status     string
		limit      int
		offset     int
		wantStatus parcel.Status
		wantLimit  int
		wantErr    error
	}{
		{name: "defaults", wantStatus: parcel.StatusUnknown, wantLimit: 50},
		{name: "status_filter", status: "out_for_delivery", limit: 10, wantStatus: parcel.StatusOutForDelivery, wantLimit: 10},
		{name: "unknown_status", status: "lost", wantErr: errs.ErrValueIsInvalid},
		{name: "limit_too_large", limit: 201, wantErr: errs.ErrValueIsOutOfRange},
		{name: "negative_limit", limit: -1, wantErr: errs.ErrValueIsOutOfRange},
		{name: "negative_offset", offset: -5, wantErr: errs.ErrValueIsOutOfRange},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			query, err := queries.NewListAllParcelsQuery(controller(), tc.status, tc.limit, tc.offset)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, query.Validate())
			assert.Equal(t, tc.wantStatus, query.Status())
			assert.Equal(t, tc.wantLimit, query.Limit())
			assert.Equal(t, tc.offset, query.Offset())
		})
	}
}

func TestNewFindNearbyDriversQuery(t *testing.T) {
	query, err := queries.NewFindNearbyDriversQuery(controller(), 52.52, 13.405, 5, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, query.Limit())
	assert.InDelta(t, 5.0, query.RadiusKm(), 1e-9)
	assert.InDelta(t, 52.52, query.Center().Latitude(), 1e-9)

	_, err = queries.NewFindNearbyDriversQuery(controller(), 91, 0, 5, 0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = queries.NewFindNearbyDriversQuery(controller(), 0, 0, 0, 0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = queries.NewFindNearbyDriversQuery(controller(), 0, 0, 150, 0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = queries.NewFindNearbyDriversQuery(controller(), 0, 0, 5, 51)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewGetActorQuery(t *testing.T) {
	id := kernel.NewUUID()

	query, err := queries.NewGetActorQuery(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, query.UserID())

	_, err = queries.NewGetActorQuery("not-a-uuid")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestQueries_NotConstructedViaConstructor(t *testing.T) {
	testCases := []struct {
		name     string
		validate func() error
		expected error
	}{
		{"tracking_history", queries.GetTrackingHistoryQuery{}.Validate, queries.ErrGetTrackingHistoryQueryIsNotConstructed},
		{"customer_parcels", queries.ListCustomerParcelsQuery{}.Validate, queries.ErrListCustomerParcelsQueryIsNotConstructed},
		{"all_parcels", queries.ListAllParcelsQuery{}.Validate, queries.ErrListAllParcelsQueryIsNotConstructed},
		{"drivers", queries.ListDriversQuery{}.Validate, queries.ErrListDriversQueryIsNotConstructed},
		{"driver_jobs", queries.ListDriverJobsQuery{}.Validate, queries.ErrListDriverJobsQueryIsNotConstructed},
		{"notifications", queries.ListNotificationsQuery{}.Validate, queries.ErrListNotificationsQueryIsNotConstructed},
		{"nearby_drivers", queries.FindNearbyDriversQuery{}.Validate, queries.ErrFindNearbyDriversQueryIsNotConstructed},
		{"actor", queries.GetActorQuery{}.Validate, queries.ErrGetActorQueryIsNotConstructed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}
