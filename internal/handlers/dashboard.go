package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dayboard/dayboard/internal/progress"
	"github.com/dayboard/dayboard/internal/tasks"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// DashboardHandler exposes the progress coordinator to the frontend
type DashboardHandler struct {
	coordinator *progress.Coordinator
	logger      *zap.Logger
}

// NewDashboardHandler creates a dashboard handler
func NewDashboardHandler(coordinator *progress.Coordinator, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{coordinator: coordinator, logger: logger}
}

// RegisterRoutes registers the dashboard routes on the given router.
// The router should already carry the /api/v1 prefix.
func (h *DashboardHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/dashboard", h.GetDashboard).Methods("GET")
	r.HandleFunc("/tasks", h.CreateTask).Methods("POST")
	r.HandleFunc("/tasks/{id}/complete", h.CompleteTask).Methods("POST")
	r.HandleFunc("/tasks/{id}", h.DeleteTask).Methods("DELETE")
	r.HandleFunc("/suggestions/{id}/accept", h.AcceptSuggestion).Methods("POST")
	r.HandleFunc("/suggestions/{id}", h.DismissSuggestion).Methods("DELETE")
}

// GetDashboard initializes the session and returns the full read model
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	model, err := h.coordinator.Initialize(r.Context())
	if err != nil {
		h.logger.Error("dashboard_initialize_failed", zap.Error(err))
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, model)
}

// CreateTask adds a user-entered task
func (h *DashboardHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var input tasks.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}

	task, err := h.coordinator.CreateTask(r.Context(), input)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, task)
}

// CompleteTask completes a task and reports the point award
func (h *DashboardHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	result, err := h.coordinator.CompleteTask(r.Context(), id)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// DeleteTask removes a task. Absent ids still return 204: deletion is
// idempotent by contract.
func (h *DashboardHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.coordinator.DeleteTask(r.Context(), id); err != nil {
		respondEngineError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AcceptSuggestion converts a suggestion into a task
func (h *DashboardHandler) AcceptSuggestion(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	task, err := h.coordinator.AcceptSuggestion(r.Context(), id)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, task)
}

// DismissSuggestion drops a suggestion; always succeeds
func (h *DashboardHandler) DismissSuggestion(w http.ResponseWriter, r *http.Request) {
	h.coordinator.DismissSuggestion(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}
