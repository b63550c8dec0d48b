// Package httpapi holds HTTP plumbing shared by all endpoint groups.
package httpapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ErrorBody is the uniform error response shape: {"detail": "..."}.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// ErrorHandler returns an echo.HTTPErrorHandler that renders every error as
// an ErrorBody. Messages carried by echo.HTTPError are passed through for
// 4xx responses; anything else becomes a generic 500 with the underlying
// error logged server-side only.
func ErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		detail := "Internal server error"

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			switch m := he.Message.(type) {
			case string:
				detail = m
			case error:
				detail = m.Error()
			default:
				detail = fmt.Sprintf("%v", m)
			}
		}

		if code >= http.StatusInternalServerError {
			rid, _ := c.Get("request_id").(string)
			logger.Error().
				Err(err).
				Str("request_id", rid).
				Str("path", c.Request().URL.Path).
				Msg("request failed")
		}
		// Never leak internal error text to the client. 503 keeps its fixed
		// probe message; plain 500s always render the generic detail.
		if code == http.StatusInternalServerError {
			detail = "Internal server error"
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, ErrorBody{Detail: detail})
	}
}
