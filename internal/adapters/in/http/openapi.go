package http

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"parceltrack/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

// LoadOpenAPI parses and validates the embedded API description.
func LoadOpenAPI(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(api.OpenAPI)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

// validateRequests checks parameters and bodies of documented routes.
// Routes missing from the document fall through to echo.
func validateRequests(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, validationMessage(err))
			}
			return next(c)
		}
	}, nil
}

func validationMessage(err error) string {
	switch e := err.(type) {
	case *openapi3filter.RequestError:
		if e.Parameter != nil {
			return fmt.Sprintf("parameter %q: %s", e.Parameter.Name, e.Reason+reasonSuffix(e.Err))
		}
		if e.RequestBody != nil {
			return "request body: " + e.Reason + reasonSuffix(e.Err)
		}
		return e.Error()
	case *routers.RouteError:
		return e.Reason
	default:
		return err.Error()
	}
}

func reasonSuffix(err error) string {
	if err == nil {
		return ""
	}
	if schemaErr, ok := err.(*openapi3.SchemaError); ok {
		return ": " + schemaErr.Reason
	}
	return ": " + err.Error()
}

// openAPIDoc exposes the document to the swagger UI through the swag
// registry.
type openAPIDoc struct {
	json string
}

// ReadDoc implements swag.Swagger.
func (d openAPIDoc) ReadDoc() string {
	return d.json
}

var registerDocOnce sync.Once

func registerSwaggerDoc(doc *openapi3.T) ([]byte, error) {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal openapi document: %w", err)
	}

	registerDocOnce.Do(func() {
		if swag.GetSwagger(swag.Name) == nil {
			swag.Register(swag.Name, openAPIDoc{json: string(raw)})
		}
	})
	return raw, nil
}
