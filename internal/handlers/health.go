package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Pinger is the connectivity probe for the persistent store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthChecker reports service health
type HealthChecker struct {
	store Pinger
}

// NewHealthChecker creates a health checker. store may be nil for basic mode.
func NewHealthChecker(store Pinger) *HealthChecker {
	return &HealthChecker{store: store}
}

// HealthCheck handles GET /healthz. With ?mode=extended it also probes the
// persistent store.
func (h *HealthChecker) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	status := http.StatusOK

	if r.URL.Query().Get("mode") == "extended" && h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		response.Checks = map[string]string{"store": "healthy"}
		if err := h.store.Ping(ctx); err != nil {
			response.Checks["store"] = "unhealthy"
			response.Status = "unhealthy"
			status = http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
