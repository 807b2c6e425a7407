package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"fulfillment/internal/generated/servers"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const BaseURL = "/api/v1"

// NewRouter builds the echo instance serving the API under BaseURL, the swagger UI
// and the health probe. Requests to the API are validated against doc.
func NewRouter(server *Server, doc *openapi3.T) (*echo.Echo, error) {
	validator, err := newRequestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = servers.RegisterSwaggerDoc(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(requestLogger(server.logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group(BaseURL, validator)
	servers.RegisterHandlers(api, server)

	return e, nil
}

// newRequestValidator checks method, path, parameters and body of each request
// against the OpenAPI document before it reaches the handlers.
func newRequestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	// Paths are matched with BaseURL stripped, so the server list is not needed.
	routed := *doc
	routed.Servers = nil

	router, err := gorillamux.NewRouter(&routed)
	if err != nil {
		return nil, err
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			req := c.Request().Clone(ctx)
			req.URL.Path = strings.TrimPrefix(req.URL.Path, BaseURL)
			req.URL.RawPath = ""

			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				return routeError(c, findErr)
			}

			validateErr := openapi3filter.ValidateRequest(ctx, &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    &openapi3filter.Options{AuthenticationFunc: openapi3filter.NoopAuthenticationFunc},
			})
			// the validator drains the body and leaves a fresh reader on the clone
			c.Request().Body = req.Body
			if validateErr != nil {
				return c.JSON(http.StatusBadRequest, servers.Error{
					Code:    http.StatusBadRequest,
					Message: validateErr.Error(),
				})
			}

			return next(c)
		}
	}, nil
}

func routeError(c echo.Context, err error) error {
	code := http.StatusNotFound
	if errors.Is(err, routers.ErrMethodNotAllowed) {
		code = http.StatusMethodNotAllowed
	}
	return c.JSON(code, servers.Error{Code: code, Message: err.Error()})
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				logger.WarnContext(c.Request().Context(), "request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.DebugContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	})
}
