// Package config holds the environment-driven service configuration.
package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/vikbht/provider-mdm-graph/pkg/matching"
)

type Config struct {
	AppName                       string `env:"APP_NAME" env-default:"provider-mdm-api"`
	Port                          int    `env:"PORT" env-default:"3002"`
	LogLevel                      string `env:"LOG_LEVEL" env-default:"info"`
	PrettyLogs                    bool   `env:"PRETTY_LOGS" env-default:"false"`
	HttpServerWriteTimeoutSeconds int    `env:"HTTP_SERVER_WRITE_TIMEOUT_SECONDS" env-default:"10"`
	HttpServerReadTimeoutSeconds  int    `env:"HTTP_SERVER_READ_TIMEOUT_SECONDS" env-default:"10"`
	HttpServerIdleTimeoutSeconds  int    `env:"HTTP_SERVER_IDLE_TIMEOUT_SECONDS" env-default:"10"`
	StartupMaxAttempts            int    `env:"STARTUP_MAX_ATTEMPTS" env-default:"5"`

	// Graph Database (Neo4j/Memgraph)
	GraphDBHost     string `env:"GRAPH_DB_HOST" env-default:"localhost"`
	GraphDBPort     int    `env:"GRAPH_DB_PORT" env-default:"7687"`
	GraphDBUser     string `env:"GRAPH_DB_USER" env-default:""`
	GraphDBPassword string `env:"GRAPH_DB_PASSWORD" env-default:""`

	// Matching weights
	MatchWeightNPI     float64 `env:"MATCH_WEIGHT_NPI" env-default:"0.40"`
	MatchWeightName    float64 `env:"MATCH_WEIGHT_NAME" env-default:"0.25"`
	MatchWeightLicense float64 `env:"MATCH_WEIGHT_LICENSE" env-default:"0.20"`
	MatchWeightEmail   float64 `env:"MATCH_WEIGHT_EMAIL" env-default:"0.10"`
	MatchWeightPhone   float64 `env:"MATCH_WEIGHT_PHONE" env-default:"0.05"`

	// Match classification thresholds
	ThresholdExactMatch       float64 `env:"THRESHOLD_EXACT_MATCH" env-default:"1.0"`
	ThresholdHighConfidence   float64 `env:"THRESHOLD_HIGH_CONFIDENCE" env-default:"0.85"`
	ThresholdMediumConfidence float64 `env:"THRESHOLD_MEDIUM_CONFIDENCE" env-default:"0.70"`
	ThresholdLowConfidence    float64 `env:"THRESHOLD_LOW_CONFIDENCE" env-default:"0.50"`

	// Fuzzy name matching
	FuzzyMatchEnabled   bool    `env:"FUZZY_MATCH_ENABLED" env-default:"true"`
	FuzzyMatchAlgorithm string  `env:"FUZZY_MATCH_ALGORITHM" env-default:"levenshtein"`
	FuzzyMatchThreshold float64 `env:"FUZZY_MATCH_THRESHOLD" env-default:"0.8"`
}

// Load reads configuration from the environment, layering an optional .env
// file underneath for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return &cfg, nil
}

// MatchingConfig assembles and validates the matching pipeline configuration.
func (c *Config) MatchingConfig() (matching.Config, error) {
	cfg := matching.Config{
		Weights: matching.Weights{
			NPI:           c.MatchWeightNPI,
			Name:          c.MatchWeightName,
			LicenseNumber: c.MatchWeightLicense,
			Email:         c.MatchWeightEmail,
			Phone:         c.MatchWeightPhone,
		},
		Thresholds: matching.Thresholds{
			ExactMatch:       c.ThresholdExactMatch,
			HighConfidence:   c.ThresholdHighConfidence,
			MediumConfidence: c.ThresholdMediumConfidence,
			LowConfidence:    c.ThresholdLowConfidence,
		},
		Fuzzy: matching.FuzzyConfig{
			Enabled:   c.FuzzyMatchEnabled,
			Algorithm: c.FuzzyMatchAlgorithm,
			Threshold: c.FuzzyMatchThreshold,
		},
	}
	if err := cfg.Validate(); err != nil {
		return matching.Config{}, err
	}
	return cfg, nil
}
