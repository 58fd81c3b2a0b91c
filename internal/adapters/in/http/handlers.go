package http

import (
	"context"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/job"
	"parceltrack/internal/core/domain/model/notification"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
)

// Handler is the shape shared by the command and query handlers.
type Handler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

type locationHandler interface {
	Handle(ctx context.Context, cmd commands.UpdateDriverLocationCommand) error
}

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	RegisterUser         Handler[commands.RegisterUserCommand, *user.User]
	BookParcel           Handler[commands.BookParcelCommand, *parcel.Parcel]
	AssignDriver         Handler[commands.AssignDriverCommand, *job.Job]
	AcceptJob            Handler[commands.AcceptJobCommand, *job.Job]
	ScanParcel           Handler[commands.ScanParcelCommand, *parcel.Parcel]
	CompleteDelivery     Handler[commands.CompleteDeliveryCommand, *parcel.Parcel]
	FailJob              Handler[commands.FailJobCommand, *job.Job]
	CancelParcel         Handler[commands.CancelParcelCommand, *parcel.Parcel]
	UpdateDriverLocation locationHandler
	MarkNotificationRead Handler[commands.MarkNotificationReadCommand, *notification.Notification]

	GetActor            Handler[queries.GetActorQuery, user.Actor]
	GetTrackingHistory  Handler[queries.GetTrackingHistoryQuery, *queries.TrackingView]
	ListCustomerParcels Handler[queries.ListCustomerParcelsQuery, []queries.ParcelSummary]
	ListAllParcels      Handler[queries.ListAllParcelsQuery, []queries.ParcelSummary]
	ListDrivers         Handler[queries.ListDriversQuery, []queries.DriverView]
	FindNearbyDrivers   Handler[queries.FindNearbyDriversQuery, []queries.NearbyDriverView]
	ListDriverJobs      Handler[queries.ListDriverJobsQuery, []queries.JobView]
	ListNotifications   Handler[queries.ListNotificationsQuery, []queries.NotificationView]
}
