package http

import (
	"net/http"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/job"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// BookParcel handles POST /api/v1/parcels.
func (s *Server) BookParcel(c echo.Context) error {
	var body NewParcel
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	cmd := commands.NewBookParcelCommand(actorFrom(c), body.details())

	p, err := s.h.BookParcel.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toParcel(p))
}

// ListMyParcels handles GET /api/v1/parcels.
func (s *Server) ListMyParcels(c echo.Context) error {
	rows, err := s.h.ListCustomerParcels.Handle(c.Request().Context(), queries.NewListCustomerParcelsQuery(actorFrom(c)))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toParcelSummaries(rows))
}

// ListAllParcels handles GET /api/v1/admin/parcels.
func (s *Server) ListAllParcels(c echo.Context) error {
	var (
		status        *string
		limit, offset *int
	)
	if err := bindQuery(c, "status", false, &status); err != nil {
		return err
	}
	if err := bindQuery(c, "limit", false, &limit); err != nil {
		return err
	}
	if err := bindQuery(c, "offset", false, &offset); err != nil {
		return err
	}

	query, err := queries.NewListAllParcelsQuery(actorFrom(c), deref(status), deref(limit), deref(offset))
	if err != nil {
		return err
	}

	rows, err := s.h.ListAllParcels.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toParcelSummaries(rows))
}

// AssignDriver handles POST /api/v1/parcels/{parcelId}/assignments.
func (s *Server) AssignDriver(c echo.Context) error {
	parcelID, err := bindPathUUID(c, "parcelId")
	if err != nil {
		return err
	}

	var body Assignment
	if err = c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	driverID, err := kernel.UUIDFromString(body.DriverID)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("driver_id", err)
	}
	jobType, err := job.ParseType(body.JobType)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAssignDriverCommand(actorFrom(c), parcelID, driverID, jobType)
	if err != nil {
		return err
	}

	j, err := s.h.AssignDriver.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toJob(j))
}

// CancelParcel handles POST /api/v1/parcels/{parcelId}/cancel.
func (s *Server) CancelParcel(c echo.Context) error {
	parcelID, err := bindPathUUID(c, "parcelId")
	if err != nil {
		return err
	}

	var body Reason
	if err = c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	cmd, err := commands.NewCancelParcelCommand(actorFrom(c), parcelID, body.Reason)
	if err != nil {
		return err
	}

	p, err := s.h.CancelParcel.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toParcel(p))
}
