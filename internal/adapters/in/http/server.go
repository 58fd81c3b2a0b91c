package http

import (
	"net/http"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Server translates HTTP requests into commands and queries.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	h Handlers
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// RegisterUser handles POST /api/v1/users.
func (s *Server) RegisterUser(c echo.Context) error {
	var body NewUser
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	role, err := user.ParseRole(body.Role)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRegisterUserCommand(body.Username, body.Email, role, user.Profile{
		FirstName:   body.FirstName,
		LastName:    body.LastName,
		PhoneNumber: body.PhoneNumber,
		Address:     body.Address,
	}, body.VehicleDetails)
	if err != nil {
		return err
	}

	u, err := s.h.RegisterUser.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toUser(u))
}

// GetTracking handles GET /api/v1/tracking/{trackingCode}.
func (s *Server) GetTracking(c echo.Context) error {
	var code string
	if err := runtime.BindStyledParameterWithOptions("simple", "trackingCode", c.Param("trackingCode"), &code,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true}); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("trackingCode", err)
	}

	query, err := queries.NewGetTrackingHistoryQuery(actorFrom(c), code)
	if err != nil {
		return err
	}

	view, err := s.h.GetTrackingHistory.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

func bindPathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.UUIDFromBytes(id[:])
}

func bindQuery[T any](c echo.Context, name string, required bool, dest *T) error {
	if err := runtime.BindQueryParameter("form", true, required, name, c.QueryParams(), dest); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
