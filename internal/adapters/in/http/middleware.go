package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// HeaderUserID carries the id of the calling user. Requests without it are
// served as the anonymous caller.
const HeaderUserID = "X-User-ID"

const actorKey = "actor"

// RateLimiter counts calls per key in fixed windows.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, error)
}

func actorFrom(c echo.Context) user.Actor {
	if actor, ok := c.Get(actorKey).(user.Actor); ok {
		return actor
	}
	return user.Anonymous()
}

// resolveActor turns the X-User-ID header into an Actor stored on the
// context. An unknown or malformed id is rejected with 401.
func resolveActor(h Handler[queries.GetActorQuery, user.Actor]) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := user.Anonymous()

			if raw := c.Request().Header.Get(HeaderUserID); raw != "" {
				query, err := queries.NewGetActorQuery(raw)
				if err != nil {
					return echo.NewHTTPError(http.StatusUnauthorized, "malformed "+HeaderUserID)
				}

				actor, err = h.Handle(c.Request().Context(), query)
				if errors.Is(err, errs.ErrObjectNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
				}
				if err != nil {
					return err
				}
			}

			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

func requireActor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if actorFrom(c).IsAnonymous() {
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}
		return next(c)
	}
}

// rateLimit limits calls per client IP. Limiter failures let the request
// through.
func rateLimit(limiter RateLimiter, scope string, limit int64, window time.Duration, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if limiter == nil || limit <= 0 {
			return next
		}

		return func(c echo.Context) error {
			ok, count, err := limiter.Allow(c.Request().Context(), scope+":"+c.RealIP(), limit, window)
			if err != nil {
				logger.Warn("rate limiter unavailable", zap.String("scope", scope), zap.Error(err))
				return next(c)
			}

			remaining := limit - count
			if remaining < 0 {
				remaining = 0
			}
			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.FormatInt(limit, 10))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if !ok {
				h.Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}

func requestMetrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		done := metrics.HTTPRequestStarted()

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		done(c.Request().Method, route, c.Response().Status)
		return err
	}
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if actor := actorFrom(c); !actor.IsAnonymous() {
				fields = append(fields, zap.String("actor", actor.String()))
			}

			switch {
			case v.Status >= http.StatusInternalServerError:
				logger.Error("request", append(fields, zap.Error(v.Error))...)
			case v.Error != nil:
				logger.Info("request", append(fields, zap.String("error", v.Error.Error()))...)
			default:
				logger.Info("request", fields...)
			}
			return nil
		},
	})
}
