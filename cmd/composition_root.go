package cmd

import (
	"time"

	httpin "parceltrack/internal/adapters/in/http"
	"parceltrack/internal/adapters/out/kafka"
	"parceltrack/internal/adapters/out/postgres"
	redisout "parceltrack/internal/adapters/out/redis"
	"parceltrack/internal/core/application/observers"
	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/jobs"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	logger     *zap.Logger
	clock      kernel.Clock
	lifecycle  *services.Lifecycle
	cache      *redisout.TrackingViewCache
	geoIndex   *redisout.DriverGeoIndex
	limiter    *redisout.RateLimiter
	publisher  *kafka.Publisher
	uowFactory *postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, redisClient *redis.Client, logger *zap.Logger) CompositionRoot {
	clock := kernel.SystemClock{}
	cache := redisout.NewTrackingViewCache(redisClient, cfg.Redis.TrackingCacheTTL())
	geoIndex := redisout.NewDriverGeoIndex(redisClient)

	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB,
		postgres.WithTrackingEventsTopic(cfg.Kafka.TrackingEventsTopic),
		postgres.WithCommitObservers(
			observers.NewTrackingViewInvalidator(cache, logger),
			observers.NewDriverPositionIndexer(geoIndex, logger),
		),
	)

	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		logger:     logger,
		clock:      clock,
		lifecycle:  services.NewLifecycle(clock),
		cache:      cache,
		geoIndex:   geoIndex,
		limiter:    redisout.NewRateLimiter(redisClient),
		publisher:  kafka.NewPublisher(cfg.Kafka.Brokers),
		uowFactory: uowFactory,
	}
}

// Close releases the broker connection.
func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.uow(), c.clock)
}

func (c *CompositionRoot) CreateBookParcelCommandHandler() commands.BookParcelCommandHandler {
	return commands.NewBookParcelCommandHandler(c.uow(), c.lifecycle)
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(c.uow(), c.lifecycle)
}

func (c *CompositionRoot) CreateAcceptJobCommandHandler() commands.AcceptJobCommandHandler {
	return commands.NewAcceptJobCommandHandler(c.uow(), c.lifecycle)
}

func (c *CompositionRoot) CreateScanParcelCommandHandler() commands.ScanParcelCommandHandler {
	return commands.NewScanParcelCommandHandler(c.uow(), c.lifecycle)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	return commands.NewCompleteDeliveryCommandHandler(c.uow(), c.lifecycle)
}

func (c *CompositionRoot) CreateFailJobCommandHandler() commands.FailJobCommandHandler {
	return commands.NewFailJobCommandHandler(c.uow(), c.lifecycle)
}

func (c *CompositionRoot) CreateCancelParcelCommandHandler() commands.CancelParcelCommandHandler {
	return commands.NewCancelParcelCommandHandler(c.uow(), c.lifecycle)
}

func (c *CompositionRoot) CreateUpdateDriverLocationCommandHandler() commands.UpdateDriverLocationCommandHandler {
	return commands.NewUpdateDriverLocationCommandHandler(c.uow(), c.lifecycle)
}

func (c *CompositionRoot) CreateMarkNotificationReadCommandHandler() commands.MarkNotificationReadCommandHandler {
	var f commands.NotificationUoWFactory = FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkNotificationReadCommandHandler(f, c.lifecycle.Policy())
}

func (c *CompositionRoot) CreateRelayTrackingEventsCommandHandler() commands.RelayTrackingEventsCommandHandler {
	return commands.NewRelayTrackingEventsCommandHandler(c.outboxUoW(), c.publisher, c.clock)
}

func (c *CompositionRoot) CreatePurgePublishedOutboxCommandHandler() commands.PurgePublishedOutboxCommandHandler {
	return commands.NewPurgePublishedOutboxCommandHandler(c.outboxUoW(), c.clock)
}

func (c *CompositionRoot) outboxUoW() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateGetActorQueryHandler() queries.GetActorQueryHandler {
	return queries.NewGetActorQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTrackingHistoryQueryHandler() queries.GetTrackingHistoryQueryHandler {
	return queries.NewGetTrackingHistoryQueryHandler(c.gormDB, c.cache, c.lifecycle.Policy(), c.logger)
}

func (c *CompositionRoot) CreateListCustomerParcelsQueryHandler() queries.ListCustomerParcelsQueryHandler {
	return queries.NewListCustomerParcelsQueryHandler(c.gormDB, c.lifecycle.Policy())
}

func (c *CompositionRoot) CreateListAllParcelsQueryHandler() queries.ListAllParcelsQueryHandler {
	return queries.NewListAllParcelsQueryHandler(c.gormDB, c.lifecycle.Policy())
}

func (c *CompositionRoot) CreateListDriversQueryHandler() queries.ListDriversQueryHandler {
	return queries.NewListDriversQueryHandler(c.gormDB, c.lifecycle.Policy())
}

func (c *CompositionRoot) CreateFindNearbyDriversQueryHandler() queries.FindNearbyDriversQueryHandler {
	return queries.NewFindNearbyDriversQueryHandler(c.gormDB, c.geoIndex, c.lifecycle.Policy(), c.logger)
}

func (c *CompositionRoot) CreateListDriverJobsQueryHandler() queries.ListDriverJobsQueryHandler {
	return queries.NewListDriverJobsQueryHandler(c.gormDB, c.lifecycle.Policy())
}

func (c *CompositionRoot) CreateListNotificationsQueryHandler() queries.ListNotificationsQueryHandler {
	return queries.NewListNotificationsQueryHandler(c.gormDB, c.lifecycle.Policy())
}

// CreateServer wires every use case into the HTTP server.
func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		RegisterUser:         c.CreateRegisterUserCommandHandler(),
		BookParcel:           c.CreateBookParcelCommandHandler(),
		AssignDriver:         c.CreateAssignDriverCommandHandler(),
		AcceptJob:            c.CreateAcceptJobCommandHandler(),
		ScanParcel:           c.CreateScanParcelCommandHandler(),
		CompleteDelivery:     c.CreateCompleteDeliveryCommandHandler(),
		FailJob:              c.CreateFailJobCommandHandler(),
		CancelParcel:         c.CreateCancelParcelCommandHandler(),
		UpdateDriverLocation: c.CreateUpdateDriverLocationCommandHandler(),
		MarkNotificationRead: c.CreateMarkNotificationReadCommandHandler(),
		GetActor:             c.CreateGetActorQueryHandler(),
		GetTrackingHistory:   c.CreateGetTrackingHistoryQueryHandler(),
		ListCustomerParcels:  c.CreateListCustomerParcelsQueryHandler(),
		ListAllParcels:       c.CreateListAllParcelsQueryHandler(),
		ListDrivers:          c.CreateListDriversQueryHandler(),
		FindNearbyDrivers:    c.CreateFindNearbyDriversQueryHandler(),
		ListDriverJobs:       c.CreateListDriverJobsQueryHandler(),
		ListNotifications:    c.CreateListNotificationsQueryHandler(),
	})
}

func (c *CompositionRoot) RouterConfig() httpin.RouterConfig {
	return httpin.RouterConfig{
		RateLimiter:        c.limiter,
		TrackingRateLimit:  c.cfg.HTTP.TrackingRateLimitPerMinute,
		TrackingRateWindow: time.Minute,
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateRelayTrackingEventsCommandHandler(),
		c.CreatePurgePublishedOutboxCommandHandler(),
		jobs.Config{
			RelaySchedule:   c.cfg.Jobs.RelaySchedule,
			RelayBatchSize:  c.cfg.Jobs.RelayBatchSize,
			PurgeSchedule:   c.cfg.Jobs.PurgeSchedule,
			OutboxRetention: c.cfg.Jobs.OutboxRetention(),
		},
		c.logger,
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
