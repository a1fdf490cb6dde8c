package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/nickg-hm/tracking-links/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Surfaces upstream error payloads verbatim for diagnosability.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	if errors.Is(err, domain.ErrOrderNotFound) {
		return http.StatusNotFound, "order not found in the order system"
	}
	// Normally rendered by the handler with its richer envelope; mapped here
	// too so the sentinel can never surface as a 500.
	if errors.Is(err, domain.ErrNoOrdersForEmail) {
		return http.StatusNotFound, "no orders found for this email"
	}

	// Upstream failures carry the upstream's own error payload so support can
	// diagnose without tailing logs.
	var ue *domain.UpstreamError
	if errors.As(err, &ue) {
		log.Warn().
			Err(err).
			Str("service", ue.Service).
			Int("upstream_status", ue.Status).
			Msg("upstream request failed")

		msg := ue.Payload
		if msg == "" {
			msg = ue.Error()
		}
		return http.StatusBadGateway, msg
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
