package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status    string      `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Service   string      `json:"service"`
	Version   string      `json:"version"`
	Backend   ProbeResult `json:"backend"`
	Flash     string      `json:"flash"`
}

type HealthHandler struct {
	serviceName string
	version     string
	probe       *BackendProbe
	flash       Pinger
}

func NewHealthHandler(serviceName, version string, probe *BackendProbe, flash Pinger) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		probe:       probe,
		flash:       flash,
	}
}

// HealthCheck reports the front end as healthy while the flash store answers.
// The backend result is informational: pages still render an error row without it.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status := "healthy"
	code := http.StatusOK

	flashStatus := "disabled"
	if h.flash != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.flash.Ping(pingCtx); err != nil {
			flashStatus = "down"
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		} else {
			flashStatus = "up"
		}
	}

	backend := ProbeResult{Status: "unknown"}
	if h.probe != nil {
		backend = h.probe.Last()
	}
	if backend.Status == "down" && status == "healthy" {
		status = "degraded"
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		Backend:   backend,
		Flash:     flashStatus,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
