package handlers

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/apper-canvas/homescout-pixel-alarm/internal/middleware"
	"github.com/gin-gonic/gin"
)

const (
	// APIVersion is the current version of the API
	APIVersion = "1.0.0"
	// HealthCheckTimeout bounds each dependency check
	HealthCheckTimeout = 2 * time.Second
)

// Pinger is a dependency that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler handles health check and readiness endpoints.
type HealthHandler struct {
	startTime time.Time
	checks    map[string]Pinger
	info      map[string]string
	env       string
}

// NewHealthHandler creates a HealthHandler that reports ready only when
// every named check pings successfully. info is echoed by the info endpoint.
func NewHealthHandler(env string, checks map[string]Pinger, info map[string]string) *HealthHandler {
	return &HealthHandler{
		startTime: time.Now(),
		checks:    checks,
		info:      info,
		env:       env,
	}
}

// HealthResponse represents the basic health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse maps each dependency to "connected" or "disconnected".
type ReadyResponse struct {
	Checks map[string]string `json:"checks"`
	Status string            `json:"status"`
}

// InfoResponse represents the API information response.
type InfoResponse struct {
	Components  map[string]string `json:"components,omitempty"`
	Version     string            `json:"version"`
	Environment string            `json:"environment"`
	Uptime      string            `json:"uptime"`
}

// Health handles GET /health. It checks no dependencies and serves liveness probes.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy"})
}

// Ready handles GET /health/ready, returning 503 if any dependency is down.
func (h *HealthHandler) Ready(c *gin.Context) {
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := ReadyResponse{Status: "ready", Checks: make(map[string]string, len(names))}
	for _, name := range names {
		ctx, cancel := context.WithTimeout(c.Request.Context(), HealthCheckTimeout)
		err := h.checks[name].Ping(ctx)
		cancel()

		if err != nil {
			if log := middleware.GetLogger(c); log != nil {
				log.Error("Dependency health check failed", err, map[string]interface{}{
					"dependency": name,
					"timeout":    HealthCheckTimeout.String(),
				})
			}
			resp.Checks[name] = "disconnected"
			resp.Status = "not_ready"
			continue
		}
		resp.Checks[name] = "connected"
	}

	status := http.StatusOK
	if resp.Status != "ready" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

// Info handles GET /api/v1/info.
func (h *HealthHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, InfoResponse{
		Version:     APIVersion,
		Environment: h.env,
		Uptime:      formatUptime(time.Since(h.startTime)),
		Components:  h.info,
	})
}

// formatUptime formats a duration into a human-readable string.
func formatUptime(d time.Duration) string {
	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	}
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}
