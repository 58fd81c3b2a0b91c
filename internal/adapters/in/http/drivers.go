package http

import (
	"net/http"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// ListDrivers handles GET /api/v1/drivers.
func (s *Server) ListDrivers(c echo.Context) error {
	var availableOnly *bool
	if err := bindQuery(c, "available_only", false, &availableOnly); err != nil {
		return err
	}

	rows, err := s.h.ListDrivers.Handle(c.Request().Context(),
		queries.NewListDriversQuery(actorFrom(c), deref(availableOnly)))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDrivers(rows))
}

// FindNearbyDrivers handles GET /api/v1/drivers/nearby.
func (s *Server) FindNearbyDrivers(c echo.Context) error {
	var (
		lat, lon, radiusKm float64
		limit              *int
	)
	if err := bindQuery(c, "lat", true, &lat); err != nil {
		return err
	}
	if err := bindQuery(c, "lon", true, &lon); err != nil {
		return err
	}
	if err := bindQuery(c, "radius_km", true, &radiusKm); err != nil {
		return err
	}
	if err := bindQuery(c, "limit", false, &limit); err != nil {
		return err
	}

	query, err := queries.NewFindNearbyDriversQuery(actorFrom(c), lat, lon, radiusKm, deref(limit))
	if err != nil {
		return err
	}

	rows, err := s.h.FindNearbyDrivers.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNearbyDrivers(rows))
}

// UpdateDriverLocation handles PUT /api/v1/drivers/me/location.
func (s *Server) UpdateDriverLocation(c echo.Context) error {
	var body Location
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	cmd, err := commands.NewUpdateDriverLocationCommand(actorFrom(c), body.Latitude, body.Longitude)
	if err != nil {
		return err
	}

	if err = s.h.UpdateDriverLocation.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
