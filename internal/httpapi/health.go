package httpapi

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Ovitozinn/luxe-dash-suite/internal/storage"
	"github.com/Ovitozinn/luxe-dash-suite/pkg/logger"
	"github.com/Ovitozinn/luxe-dash-suite/pkg/utils"
)

const readyPingTimeout = 2 * time.Second

// HealthResponse is the response structure for health check endpoints
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

type probes struct {
	health  storage.HealthChecker
	version string
}

// handleHealth handles the /health endpoint for liveness probes
func (p *probes) handleHealth(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, HealthResponse{
		Status:  "UP",
		Version: p.version,
	})
}

// handleReady handles the /ready endpoint for readiness probes. The store
// must answer a ping.
func (p *probes) handleReady(w http.ResponseWriter, r *http.Request) {
	details := map[string]string{
		"timestamp": utils.FormatISO8601(utils.Now()),
	}

	if p.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readyPingTimeout)
		defer cancel()
		if err := p.health.Ping(ctx); err != nil {
			logger.FromContext(r.Context()).Warn("Readiness check failed", zap.Error(err))
			details["database"] = err.Error()
			utils.WriteJSONResponse(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  "NOT_READY",
				Details: details,
			})
			return
		}
		details["database"] = "ok"
	}

	utils.WriteJSONResponse(w, http.StatusOK, HealthResponse{
		Status:  "READY",
		Details: details,
	})
}
