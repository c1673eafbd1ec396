package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	RedisURL        string
	ServerPort      string
	FrontendURL     string
	TemplateBaseURL string
	RefreshInterval time.Duration
	RateLimit       string
	DebugMode       bool
	OTELEnabled     bool
	OTELEndpoint    string
	RulesFile       string

	Rules Rules
}

// Rules tunes the gamification and suggestion engines. Loaded from an
// optional YAML file; zero values fall back to engine defaults.
type Rules struct {
	PointsPerLevel            int  `yaml:"points_per_level"`
	PointsPerTask             int  `yaml:"points_per_task"`
	MaxSuggestions            int  `yaml:"max_suggestions"`
	SuppressIfCategoryPresent bool `yaml:"suppress_if_category_present"`
}

// Load loads configuration from environment variables and, when RULES_FILE
// is set, the YAML rules file.
func Load() (*Config, error) {
	cfg := &Config{
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379/0"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:3000"),
		TemplateBaseURL: getEnv("TEMPLATE_BASE_URL", ""),
		RefreshInterval: getEnvDuration("REFRESH_INTERVAL", 5*time.Minute),
		RateLimit:       getEnv("RATE_LIMIT", "10-S"),
		DebugMode:       getEnvBool("DEBUG_MODE", false),
		OTELEnabled:     getEnvBool("OTEL_ENABLED", false),
		OTELEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		RulesFile:       getEnv("RULES_FILE", ""),
	}

	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	if cfg.RulesFile != "" {
		rules, err := loadRules(cfg.RulesFile)
		if err != nil {
			return nil, err
		}
		cfg.Rules = *rules
	}

	return cfg, nil
}

// loadRules reads the YAML rules file.
func loadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}

	if rules.PointsPerLevel < 0 {
		return nil, fmt.Errorf("points_per_level must be non-negative")
	}
	if rules.PointsPerTask < 0 {
		return nil, fmt.Errorf("points_per_task must be non-negative")
	}

	return &rules, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}
