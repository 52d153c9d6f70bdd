package config

import (
	"os"
	"strconv"

	"bayesrt/internal/errors"
)

// Config represents the complete chapter-run configuration
type Config struct {
	Data    DataConfig
	Model   ModelConfig
	Sampler SamplerConfig
	Report  ReportConfig
}

// DataConfig holds dataset source and filtering settings
type DataConfig struct {
	URL         string
	FilePath    string
	RTColumn    string
	CondColumn  string
	ErrColumn   string
	PartColumn  string
	RTUnit      float64 // Scale factor into seconds (0.001 for ms data)
	DropErrors  bool
	MinRT       float64
	MaxRT       float64
}

// ModelConfig selects the distribution family for the chapter
type ModelConfig struct {
	Family string
}

// SamplerConfig holds posterior sampling settings
type SamplerConfig struct {
	Chains int
	Draws  int
	BurnIn int
	Seed   int64
}

// ReportConfig holds output artifact settings
type ReportConfig struct {
	OutDir string
	Title  string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Data:    loadDataConfig(),
		Model:   ModelConfig{Family: getEnvOrDefault("MODEL_FAMILY", "gaussian")},
		Sampler: loadSamplerConfig(),
		Report:  loadReportConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadDataConfig() DataConfig {
	return DataConfig{
		URL:        getEnvOrDefault("DATASET_URL", ""),
		FilePath:   getEnvOrDefault("DATASET_FILE", ""),
		RTColumn:   getEnvOrDefault("RT_COLUMN", "RT"),
		CondColumn: getEnvOrDefault("CONDITION_COLUMN", "Condition"),
		ErrColumn:  getEnvOrDefault("ERROR_COLUMN", "Error"),
		PartColumn: getEnvOrDefault("PARTICIPANT_COLUMN", "Participant"),
		RTUnit:     getEnvFloatOrDefault("RT_UNIT", 1.0),
		DropErrors: getEnvBoolOrDefault("DROP_ERRORS", true),
		MinRT:      getEnvFloatOrDefault("MIN_RT", 0.15),
		MaxRT:      getEnvFloatOrDefault("MAX_RT", 3.0),
	}
}

func loadSamplerConfig() SamplerConfig {
	return SamplerConfig{
		Chains: getEnvIntOrDefault("CHAINS", 4),
		Draws:  getEnvIntOrDefault("DRAWS", 2000),
		BurnIn: getEnvIntOrDefault("BURN_IN", 1000),
		Seed:   int64(getEnvIntOrDefault("SEED", 1234)),
	}
}

func loadReportConfig() ReportConfig {
	return ReportConfig{
		OutDir: getEnvOrDefault("OUT_DIR", "./out"),
		Title:  getEnvOrDefault("REPORT_TITLE", "Reaction time model"),
	}
}

func validateConfig(config *Config) error {
	if config.Data.URL == "" && config.Data.FilePath == "" {
		return errors.ConfigInvalid("DATASET_URL or DATASET_FILE is required")
	}
	if config.Model.Family == "" {
		return errors.ConfigInvalid("MODEL_FAMILY is required")
	}
	if config.Sampler.Chains < 1 {
		return errors.ConfigInvalid("CHAINS must be >= 1")
	}
	if config.Sampler.Draws < 1 {
		return errors.ConfigInvalid("DRAWS must be >= 1")
	}
	if config.Sampler.BurnIn < 0 {
		return errors.ConfigInvalid("BURN_IN must be >= 0")
	}
	if config.Data.MinRT < 0 || (config.Data.MaxRT > 0 && config.Data.MaxRT <= config.Data.MinRT) {
		return errors.ConfigInvalid("RT bounds must satisfy 0 <= MIN_RT < MAX_RT")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
