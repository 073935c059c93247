package router

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"heatshield/internal/errors"
)

// ErrorHandler renders every error as errors.ErrorResponse. Server faults are
// logged with the underlying cause and hidden from the client.
func ErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := toResponse(err)
		if status >= http.StatusInternalServerError {
			log.Error().Err(err).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Str("uri", c.Request().RequestURI).
				Msg("request failed")
			body = errors.ErrorResponse{Error: "internal server error", Code: "INTERNAL_ERROR"}
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			log.Error().Err(writeErr).Msg("write error response")
		}
	}
}

func toResponse(err error) (int, errors.ErrorResponse) {
	var he *echo.HTTPError
	if !stderrors.As(err, &he) {
		httpErr := errors.MapErrorToHTTP(err)
		return httpErr.StatusCode, httpErr.ToErrorResponse()
	}

	switch msg := he.Message.(type) {
	case errors.ErrorResponse:
		return he.Code, msg
	case string:
		return he.Code, errors.ErrorResponse{Error: msg, Code: codeForStatus(he.Code)}
	default:
		return he.Code, errors.ErrorResponse{Error: http.StatusText(he.Code), Code: codeForStatus(he.Code)}
	}
}

// codeForStatus derives a code such as NOT_FOUND from the status text.
func codeForStatus(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "ERROR"
	}
	return strings.ToUpper(strings.NewReplacer(" ", "_", "-", "_").Replace(text))
}
