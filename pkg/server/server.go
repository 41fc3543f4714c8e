// Package server assembles the HTTP surface: echo instance, middleware, and
// the error mapping from pipeline errors to HTTP responses.
package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.uber.org/zap"

	"github.com/vikbht/provider-mdm-graph/config"
	"github.com/vikbht/provider-mdm-graph/pkg/apperrors"
	"github.com/vikbht/provider-mdm-graph/pkg/tracing"
)

// CustomValidator adapts go-playground/validator to echo's Validator hook.
type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return httperror.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// New builds the echo instance with tracing, request logging, and the error
// handler wired in.
func New(cfg *config.Config, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Server.ReadTimeout = time.Duration(cfg.HttpServerReadTimeoutSeconds) * time.Second
	e.Server.WriteTimeout = time.Duration(cfg.HttpServerWriteTimeoutSeconds) * time.Second
	e.Server.IdleTimeout = time.Duration(cfg.HttpServerIdleTimeoutSeconds) * time.Second

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(otelecho.Middleware(cfg.AppName))
	e.Use(RequestLogger(logger))

	return e
}

// ErrorResponse is the JSON body written for any handler error.
type ErrorResponse struct {
	Message   string         `json:"message"`
	RequestID string         `json:"request_id"`
	TraceID   string         `json:"trace_id"`
	Meta      map[string]any `json:"meta"`
}

// ErrorHandler maps pipeline and transport errors onto HTTP status codes.
// Validation failures are 400, missing records 404, store outages 503.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		ctx := c.Request().Context()
		logger.Error("api is returning an error", zap.Error(err))
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "Internal Server Error"
		meta := map[string]any{}

		var validationErr *apperrors.ValidationError
		var configErr *apperrors.ConfigurationError
		switch {
		case errors.As(err, &validationErr):
			code = http.StatusBadRequest
			message = validationErr.Error()
		case errors.As(err, &configErr):
			code = http.StatusBadRequest
			message = configErr.Error()
		case errors.Is(err, apperrors.ErrNotFound):
			code = http.StatusNotFound
			message = err.Error()
		case errors.Is(err, apperrors.ErrStoreUnavailable):
			code = http.StatusServiceUnavailable
			message = "record store unavailable"
		}

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if msg, ok := he.Message.(string); ok {
				message = msg
			}
		}

		if httperror.IsHTTPError(err) {
			httperr := httperror.ToHTTPError(err)
			code = httperror.GetStatusCode(err)
			message = httperr.Error()
			meta = httperr.Meta
		}

		requestID := c.Response().Header().Get(echo.HeaderXRequestID)
		traceID := tracing.GetTraceID(ctx)

		_ = c.JSON(code, ErrorResponse{
			Message:   message,
			RequestID: requestID,
			TraceID:   traceID,
			Meta:      meta,
		})
	}
}

// RequestLogger logs a structured line per request.
func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			req := c.Request()
			res := c.Response()
			start := time.Now()
			if err = next(c); err != nil {
				c.Error(err)
			}

			stop := time.Now()

			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = res.Header().Get(echo.HeaderXRequestID)
				if id == "" {
					id = uuid.New().String()
				}
			}

			logger.Info("Request",
				zap.String("request_id", id),
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.Int("status", res.Status),
				zap.String("route", c.Path()),
				zap.String("remote_ip", c.RealIP()),
				zap.String("host", req.Host),
				zap.String("user_agent", req.UserAgent()),
				zap.Duration("response_time", stop.Sub(start)),
				zap.String("response_size", strconv.FormatInt(res.Size, 10)),
				zap.String("trace_id", tracing.GetTraceID(c.Request().Context())),
			)

			return nil
		}
	}
}
