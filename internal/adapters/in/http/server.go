// Package http exposes the three services over REST with echo. Handlers are
// thin: they parse the request, call one command or query handler and map the
// result or error to a status code.
//
// Error mapping shared by every server:
//   - invalid order payload (order.ErrInvalidOrder): 400
//   - unknown id or malformed id: 404
//   - kitchen transition from the wrong status: 200, state left untouched
//   - event not accepted by the broker (messaging.ErrPublishFailure): 502
//   - anything else: 500
package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"fooddelivery/internal/adapters/out/messaging"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RouteRegistrar is implemented by the per-service servers.
type RouteRegistrar interface {
	RegisterRoutes(api *echo.Group)
}

// NewEcho builds the HTTP front of one service: recovery, request logging,
// GET /api/health and the routes of every registrar under /api.
func NewEcho(service string, logger *slog.Logger, servers ...RouteRegistrar) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	httpLogger := logger.With("component", "http")
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				httpLogger.ErrorContext(c.Request().Context(), "request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			httpLogger.DebugContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	}))

	api := e.Group("/api")
	api.GET("/health", healthHandler(service))
	for _, s := range servers {
		s.RegisterRoutes(api)
	}
	return e
}

func healthHandler(service string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, Health{
			Status:    "healthy",
			Service:   service,
			Timestamp: time.Now().UTC(),
		})
	}
}

func fail(c echo.Context, code int, message string) error {
	return c.JSON(code, Error{Error: message})
}

// failWith maps a handler error to its status code. fallback is the message
// used for unexpected errors.
func failWith(c echo.Context, err error, notFound, fallback string) error {
	switch {
	case errors.Is(err, order.ErrInvalidOrder):
		return fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrObjectNotFound):
		return fail(c, http.StatusNotFound, notFound)
	case errors.Is(err, messaging.ErrPublishFailure):
		return fail(c, http.StatusBadGateway, err.Error())
	default:
		c.Logger().Error(err)
		return fail(c, http.StatusInternalServerError, fallback)
	}
}
