// Package templates fetches static task template files for the dashboard.
// Fetching is best-effort by contract: initialization must never block on a
// missing or failing template source.
package templates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dayboard/dayboard/internal/models"
	"go.uber.org/zap"
)

// Template is a prebuilt task the presentation layer can offer the user.
type Template struct {
	Title       string          `json:"title"`
	Category    models.Category `json:"category"`
	Priority    models.Priority `json:"priority,omitempty"`
	TimeMinutes int             `json:"time_minutes,omitempty"`
	Icon        string          `json:"icon,omitempty"`
}

// Source supplies task templates for a category.
type Source interface {
	Fetch(ctx context.Context, category models.Category) ([]Template, error)
}

const fetchTimeout = 5 * time.Second

// HTTPSource fetches template lists from <baseURL>/<category>.json.
type HTTPSource struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPSource creates an HTTP-backed template source.
func NewHTTPSource(baseURL string, logger *zap.Logger) *HTTPSource {
	return &HTTPSource{
		baseURL: baseURL,
		client:  &http.Client{Timeout: fetchTimeout},
		logger:  logger,
	}
}

// Fetch retrieves the template list for a category.
func (s *HTTPSource) Fetch(ctx context.Context, category models.Category) ([]Template, error) {
	url := fmt.Sprintf("%s/%s.json", s.baseURL, category)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build template request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch templates: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			s.logger.Warn("failed_to_close_template_response", zap.Error(err))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("template fetch returned status %d", resp.StatusCode)
	}

	var list []Template
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode templates: %w", err)
	}

	return list, nil
}
