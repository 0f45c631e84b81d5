package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// HealthStatus is the payload served by the health endpoints.
type HealthStatus struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	KeyPool   int       `json:"key_pool"`
}

// HealthHandler reports process liveness and basic configuration facts.
type HealthHandler struct {
	version string
	keyPool int
	logger  *slog.Logger
}

// NewHealthHandler creates a HealthHandler. keyPool is the size of the
// configured credential pool, surfaced so operators can spot a drained
// configuration without reading logs.
func NewHealthHandler(version string, keyPool int, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		version: version,
		keyPool: keyPool,
		logger:  logger.With(slog.String("handler", "health")),
	}
}

// HealthCheck handles GET /api/health.
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, HealthStatus{
		Status:    "healthy",
		Version:   h.version,
		Timestamp: time.Now().UTC(),
		KeyPool:   h.keyPool,
	})
}

// LivenessCheck handles GET /api/health/live.
func (h *HealthHandler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "alive"})
}
