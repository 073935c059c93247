package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"heatshield/internal/errors"
)

// MessageResponse is returned by endpoints with no payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// fail maps a service error to an HTTP error. The cause stays
// attached for the request logger.
func fail(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
}

func badRequest(msg, code string) error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: msg,
		Code:  code,
	})
}

// isoTime formats t as ISO-8601 in UTC, or nil.
func isoTime(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.UTC().Format(time.RFC3339Nano)
	return &s
}
