package measures

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	// APIName and APIVersion identify the service on the root endpoint.
	APIName    = "Value-Based Care Quality Suite API"
	APIVersion = "1.0.0"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Root)
	e.GET("/health", h.Health)
	e.GET("/measures", h.ListMeasures)
	e.GET("/measures/:measure_id", h.GetMeasureDetails)
	e.POST("/measures/refresh", h.RefreshMeasures)
	e.GET("/patients/:patient_id/measures", h.GetPatientMeasures)
}

func (h *Handler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": APIName,
		"version": APIVersion,
	})
}

func (h *Handler) Health(c echo.Context) error {
	if err := h.svc.Ping(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Database connection failed").SetInternal(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status":   "healthy",
		"database": "connected",
	})
}

// ListMeasures never fails: measures whose queries error are omitted.
func (h *Handler) ListMeasures(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.ListMeasures(c.Request().Context()))
}

func (h *Handler) GetMeasureDetails(c echo.Context) error {
	summary, err := h.svc.GetMeasureDetails(c.Request().Context(), c.Param("measure_id"))
	if err != nil {
		if errors.Is(err, ErrMeasureNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Measure not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *Handler) RefreshMeasures(c echo.Context) error {
	h.svc.Refresh(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Quality measures refresh initiated",
		"status":  "success",
	})
}

func (h *Handler) GetPatientMeasures(c echo.Context) error {
	patientID := c.Param("patient_id")
	entries, err := h.svc.GetPatientMeasures(c.Request().Context(), patientID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
	}
	return c.JSON(http.StatusOK, PatientMeasures{
		PatientID: patientID,
		Measures:  entries,
	})
}
