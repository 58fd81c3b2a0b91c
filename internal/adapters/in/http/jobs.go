package http

import (
	"net/http"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// AcceptJob handles POST /api/v1/jobs/{jobId}/accept.
func (s *Server) AcceptJob(c echo.Context) error {
	jobID, err := bindPathUUID(c, "jobId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewAcceptJobCommand(actorFrom(c), jobID)
	if err != nil {
		return err
	}

	j, err := s.h.AcceptJob.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toJob(j))
}

// ScanParcel handles POST /api/v1/jobs/{jobId}/scan.
func (s *Server) ScanParcel(c echo.Context) error {
	jobID, err := bindPathUUID(c, "jobId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewScanParcelCommand(actorFrom(c), jobID)
	if err != nil {
		return err
	}

	p, err := s.h.ScanParcel.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toParcel(p))
}

// CompleteDelivery handles POST /api/v1/jobs/{jobId}/complete.
func (s *Server) CompleteDelivery(c echo.Context) error {
	jobID, err := bindPathUUID(c, "jobId")
	if err != nil {
		return err
	}

	var body Completion
	if err = c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	cmd, err := commands.NewCompleteDeliveryCommand(actorFrom(c), jobID, body.Notes, body.ProofRefs)
	if err != nil {
		return err
	}

	p, err := s.h.CompleteDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toParcel(p))
}

// FailJob handles POST /api/v1/jobs/{jobId}/fail.
func (s *Server) FailJob(c echo.Context) error {
	jobID, err := bindPathUUID(c, "jobId")
	if err != nil {
		return err
	}

	var body Reason
	if err = c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	cmd, err := commands.NewFailJobCommand(actorFrom(c), jobID, body.Reason)
	if err != nil {
		return err
	}

	j, err := s.h.FailJob.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toJob(j))
}

// ListMyJobs handles GET /api/v1/drivers/me/jobs.
func (s *Server) ListMyJobs(c echo.Context) error {
	var openOnly *bool
	if err := bindQuery(c, "open_only", false, &openOnly); err != nil {
		return err
	}

	rows, err := s.h.ListDriverJobs.Handle(c.Request().Context(),
		queries.NewListDriverJobsQuery(actorFrom(c), deref(openOnly)))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDriverJobs(rows))
}
