package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dayboard/dayboard/internal/models"
	"github.com/dayboard/dayboard/internal/progress"
	"github.com/dayboard/dayboard/internal/stats"
	"github.com/dayboard/dayboard/internal/store"
	"github.com/dayboard/dayboard/internal/suggest"
	"github.com/dayboard/dayboard/internal/tasks"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Today() models.Date {
	return models.DateOf(c.now)
}

type seqIDs struct {
	n int
}

func (g *seqIDs) Next() string {
	g.n++
	return fmt.Sprintf("task-%d", g.n)
}

type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	Message   string          `json:"message"`
	Timestamp string          `json:"timestamp"`
}

func newTestRouter(t *testing.T) (*mux.Router, *store.MemoryStore) {
	t.Helper()

	mem := store.NewMemoryStore()
	// Monday 2025-03-10: the weekday study suggestion is available
	clk := &fakeClock{now: time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)}
	logger := zap.NewNop()

	coordinator := progress.NewCoordinator(
		stats.NewEngine(mem, logger, 500),
		tasks.NewStore(mem, clk, &seqIDs{}, logger),
		suggest.NewEngine(suggest.Policy{}),
		nil,
		mem,
		clk,
		logger,
		progress.Options{},
	)

	router := mux.NewRouter()
	NewDashboardHandler(coordinator, logger).RegisterRoutes(router)
	return router, mem
}

func doRequest(t *testing.T, router *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	if err := json.Unmarshal(recorder.Body.Bytes(), &env); err != nil {
		t.Fatalf("Failed to decode envelope: %v (body: %s)", err, recorder.Body.String())
	}
	return env
}

func TestGetDashboard(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	recorder := doRequest(t, router, http.MethodGet, "/dashboard", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	env := decodeEnvelope(t, recorder)
	if !env.Success {
		t.Fatal("Expected success=true")
	}

	var model progress.ReadModel
	if err := json.Unmarshal(env.Data, &model); err != nil {
		t.Fatalf("Failed to decode read model: %v", err)
	}
	if model.Stats.Level != 1 || model.Stats.StreakDays != 1 {
		t.Errorf("Unexpected stats: %+v", model.Stats)
	}
	if len(model.Suggestions) != 1 || model.Suggestions[0].ID != "weekday-study" {
		t.Errorf("Expected the weekday study suggestion, got %+v", model.Suggestions)
	}
}

func TestCreateTask(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	recorder := doRequest(t, router, http.MethodPost, "/tasks",
		`{"title":"Read chapter 3","category":"study","priority":"high","time_minutes":45}`)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}

	env := decodeEnvelope(t, recorder)
	var task models.Task
	if err := json.Unmarshal(env.Data, &task); err != nil {
		t.Fatalf("Failed to decode task: %v", err)
	}
	if task.Title != "Read chapter 3" || task.Category != models.CategoryStudy {
		t.Errorf("Unexpected task: %+v", task)
	}
	if task.Priority != models.PriorityHigh {
		t.Errorf("Expected high priority, got %s", task.Priority)
	}
}

func TestCreateTask_InvalidBody(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"title":`},
		{"empty title", `{"title":"","category":"study"}`},
		{"unknown category", `{"title":"Laundry","category":"chores"}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			recorder := doRequest(t, router, http.MethodPost, "/tasks", tt.body)
			if recorder.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d: %s", recorder.Code, recorder.Body.String())
			}
			if env := decodeEnvelope(t, recorder); env.Success {
				t.Error("Expected success=false")
			}
		})
	}
}

func TestCompleteTask(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	recorder := doRequest(t, router, http.MethodPost, "/tasks",
		`{"title":"Read chapter 3","category":"study"}`)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("Failed to create task: %d", recorder.Code)
	}
	env := decodeEnvelope(t, recorder)
	var task models.Task
	if err := json.Unmarshal(env.Data, &task); err != nil {
		t.Fatalf("Failed to decode task: %v", err)
	}

	recorder = doRequest(t, router, http.MethodPost, "/tasks/"+task.ID+"/complete", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	env = decodeEnvelope(t, recorder)
	var result progress.CompleteResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("Failed to decode result: %v", err)
	}
	if result.PointsAwarded != 10 {
		t.Errorf("Expected 10 points awarded, got %d", result.PointsAwarded)
	}
	if result.Stats.TasksCompleted != 1 {
		t.Errorf("Expected 1 completion, got %d", result.Stats.TasksCompleted)
	}

	// Second completion of the same id is a 404
	recorder = doRequest(t, router, http.MethodPost, "/tasks/"+task.ID+"/complete", "")
	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected 404 on repeat completion, got %d", recorder.Code)
	}
}

func TestCompleteTask_Missing(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	recorder := doRequest(t, router, http.MethodPost, "/tasks/ghost/complete", "")
	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", recorder.Code)
	}
}

func TestDeleteTask_Idempotent(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	recorder := doRequest(t, router, http.MethodPost, "/tasks",
		`{"title":"Laundry","category":"cleaning"}`)
	env := decodeEnvelope(t, recorder)
	var task models.Task
	if err := json.Unmarshal(env.Data, &task); err != nil {
		t.Fatalf("Failed to decode task: %v", err)
	}

	recorder = doRequest(t, router, http.MethodDelete, "/tasks/"+task.ID, "")
	if recorder.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", recorder.Code)
	}
	// Repeat delete still succeeds
	recorder = doRequest(t, router, http.MethodDelete, "/tasks/"+task.ID, "")
	if recorder.Code != http.StatusNoContent {
		t.Errorf("Expected 204 on repeat delete, got %d", recorder.Code)
	}
}

func TestAcceptSuggestion(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	// Initialize populates the suggestion list
	if recorder := doRequest(t, router, http.MethodGet, "/dashboard", ""); recorder.Code != http.StatusOK {
		t.Fatalf("Failed to initialize: %d", recorder.Code)
	}

	recorder := doRequest(t, router, http.MethodPost, "/suggestions/weekday-study/accept", "")
	if recorder.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}

	env := decodeEnvelope(t, recorder)
	var task models.Task
	if err := json.Unmarshal(env.Data, &task); err != nil {
		t.Fatalf("Failed to decode task: %v", err)
	}
	if !task.FromSuggestion {
		t.Error("Expected fromSuggestion=true")
	}

	// A second accept of the same suggestion is a 404
	recorder = doRequest(t, router, http.MethodPost, "/suggestions/weekday-study/accept", "")
	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected 404 on stale accept, got %d", recorder.Code)
	}
}

func TestDismissSuggestion(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	if recorder := doRequest(t, router, http.MethodGet, "/dashboard", ""); recorder.Code != http.StatusOK {
		t.Fatalf("Failed to initialize: %d", recorder.Code)
	}

	recorder := doRequest(t, router, http.MethodDelete, "/suggestions/weekday-study", "")
	if recorder.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", recorder.Code)
	}
	// Dismiss never fails, even for unknown ids
	recorder = doRequest(t, router, http.MethodDelete, "/suggestions/ghost", "")
	if recorder.Code != http.StatusNoContent {
		t.Errorf("Expected 204 for unknown id, got %d", recorder.Code)
	}
}

func TestStoreUnavailableMapsTo503(t *testing.T) {
	t.Parallel()

	router, mem := newTestRouter(t)

	mem.FailNext = models.StoreError("get", fmt.Errorf("connection refused"))

	recorder := doRequest(t, router, http.MethodGet, "/dashboard", "")
	if recorder.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if env := decodeEnvelope(t, recorder); env.Success {
		t.Error("Expected success=false")
	}
}
