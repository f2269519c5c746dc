package handler

import (
	"context"
	"net/http"

	"github.com/sandeepkv93/storefront-admin-api/internal/health"
	"github.com/sandeepkv93/storefront-admin-api/internal/http/response"
)

// ReadinessProber reports whether every dependency answers.
type ReadinessProber interface {
	Ready(ctx context.Context) (bool, []health.CheckResult)
}

type HealthHandler struct {
	readiness ReadinessProber
}

func NewHealthHandler(readiness ReadinessProber) *HealthHandler {
	return &HealthHandler{readiness: readiness}
}

func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.readiness == nil {
		response.JSON(w, r, http.StatusOK, map[string]any{"status": "ready", "checks": []health.CheckResult{}})
		return
	}
	ready, results := h.readiness.Ready(r.Context())
	if !ready {
		response.Error(w, r, http.StatusServiceUnavailable, "DEPENDENCY_UNREADY", "Dependencies are not ready", map[string]any{"checks": results})
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]any{"status": "ready", "checks": results})
}
