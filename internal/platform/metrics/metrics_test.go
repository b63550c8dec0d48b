package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestMiddleware_PassesThrough(t *testing.T) {
	e := echo.New()
	mw := Middleware()
	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/measures", nil)
	rec := httptest.NewRecorder()
	if err := handler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestMiddleware_PropagatesError(t *testing.T) {
	e := echo.New()
	mw := Middleware()
	wantErr := echo.NewHTTPError(http.StatusNotFound, "Measure not found")
	handler := mw(func(c echo.Context) error {
		return wantErr
	})

	req := httptest.NewRequest(http.MethodGet, "/measures/INVALID", nil)
	rec := httptest.NewRecorder()
	err := handler(e.NewContext(req, rec))
	if err != wantErr {
		t.Fatalf("expected handler error to propagate, got %v", err)
	}
}

func TestRecordMeasureQuery(t *testing.T) {
	// Must not panic for either outcome.
	RecordMeasureQuery("HEDIS-DM-A1C", nil)
	RecordMeasureQuery("HEDIS-DM-A1C", errors.New("relation missing"))
}

func TestHandler_ServesExposition(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := Handler()(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Error("expected non-empty exposition body")
	}
}
