package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newTestContext(method string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/measures/INVALID", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON error body: %v", err)
	}
	return body
}

func TestErrorHandler_NotFound(t *testing.T) {
	h := ErrorHandler(zerolog.New(os.Stderr))
	c, rec := newTestContext(http.MethodGet)

	h(echo.NewHTTPError(http.StatusNotFound, "Measure not found"), c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body.Detail != "Measure not found" {
		t.Errorf("unexpected detail: %q", body.Detail)
	}
}

func TestErrorHandler_InternalHidesCause(t *testing.T) {
	h := ErrorHandler(zerolog.New(os.Stderr))
	c, rec := newTestContext(http.MethodGet)

	h(errors.New("pq: relation does not exist"), c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body.Detail != "Internal server error" {
		t.Errorf("internal detail leaked: %q", body.Detail)
	}
}

func TestErrorHandler_InternalHTTPErrorHidesMessage(t *testing.T) {
	h := ErrorHandler(zerolog.New(os.Stderr))
	c, rec := newTestContext(http.MethodGet)

	h(echo.NewHTTPError(http.StatusInternalServerError, "connection refused on 10.0.0.5"), c)

	if body := decodeBody(t, rec); body.Detail != "Internal server error" {
		t.Errorf("internal detail leaked: %q", body.Detail)
	}
}

func TestErrorHandler_ServiceUnavailable(t *testing.T) {
	h := ErrorHandler(zerolog.New(os.Stderr))
	c, rec := newTestContext(http.MethodGet)

	h(echo.NewHTTPError(http.StatusServiceUnavailable, "Database connection failed"), c)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body.Detail != "Database connection failed" {
		t.Errorf("unexpected detail: %q", body.Detail)
	}
}
