package http

import (
	"context"
	"net/http"
	"time"

	"parceltrack/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// RouterConfig tunes the public tracking endpoint.
type RouterConfig struct {
	RateLimiter        RateLimiter
	TrackingRateLimit  int64
	TrackingRateWindow time.Duration
}

// NewRouter builds the echo instance serving the API, the swagger UI,
// /metrics and /health.
func NewRouter(ctx context.Context, cfg RouterConfig, server *Server, logger *zap.Logger) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	validator, err := validateRequests(doc)
	if err != nil {
		return nil, err
	}
	rawDoc, err := registerSwaggerDoc(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))
	e.Use(requestMetrics)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/openapi.json", func(c echo.Context) error {
		c.Response().Header().Set("Cache-Control", "no-store")
		return c.JSONBlob(http.StatusOK, rawDoc)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1", validator, resolveActor(server.h.GetActor))

	v1.POST("/users", server.RegisterUser)
	v1.GET("/tracking/:trackingCode", server.GetTracking,
		rateLimit(cfg.RateLimiter, "tracking", cfg.TrackingRateLimit, cfg.TrackingRateWindow, logger))

	v1.GET("/parcels", server.ListMyParcels, requireActor)
	v1.POST("/parcels", server.BookParcel, requireActor)
	v1.POST("/parcels/:parcelId/assignments", server.AssignDriver, requireActor)
	v1.POST("/parcels/:parcelId/cancel", server.CancelParcel, requireActor)
	v1.GET("/admin/parcels", server.ListAllParcels, requireActor)

	v1.GET("/drivers", server.ListDrivers, requireActor)
	v1.GET("/drivers/nearby", server.FindNearbyDrivers, requireActor)
	v1.PUT("/drivers/me/location", server.UpdateDriverLocation, requireActor)
	v1.GET("/drivers/me/jobs", server.ListMyJobs, requireActor)

	v1.POST("/jobs/:jobId/accept", server.AcceptJob, requireActor)
	v1.POST("/jobs/:jobId/scan", server.ScanParcel, requireActor)
	v1.POST("/jobs/:jobId/complete", server.CompleteDelivery, requireActor)
	v1.POST("/jobs/:jobId/fail", server.FailJob, requireActor)

	v1.GET("/notifications", server.ListNotifications, requireActor)
	v1.POST("/notifications/:notificationId/read", server.MarkNotificationRead, requireActor)

	return e, nil
}
