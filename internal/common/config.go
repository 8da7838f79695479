package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	LLM      LLMConfig
	Pipeline PipelineConfig
	Versions VersionsConfig
}

// DatabaseConfig holds policy-store configuration
type DatabaseConfig struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// LLMConfig holds extraction-capability configuration
type LLMConfig struct {
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float32
	Timeout     time.Duration
	MaxAttempts int
	RetryDelay  time.Duration
}

// PipelineConfig holds per-claim processing knobs
type PipelineConfig struct {
	// ExtractWorkers bounds concurrent per-group extraction calls.
	ExtractWorkers int
	// StrictExtraction fails the whole claim when one group's extraction
	// fails; the default drops the group and lets the rule engine surface
	// it as a missing document.
	StrictExtraction bool
}

// VersionsConfig points at the two version-registry tables.
type VersionsConfig struct {
	GlobalPath    string
	DocumentsPath string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:             getEnv("DB_URL", ""),
			MaxConns:        getEnvAsInt32("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt32("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		LLM: LLMConfig{
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", ""),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 45*time.Second),
			MaxAttempts: getEnvAsInt("OPENAI_MAX_ATTEMPTS", 3),
			RetryDelay:  getEnvAsDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		},
		Pipeline: PipelineConfig{
			ExtractWorkers:   getEnvAsInt("PIPELINE_EXTRACT_WORKERS", 4),
			StrictExtraction: getEnvAsBool("PIPELINE_STRICT_EXTRACTION", false),
		},
		Versions: VersionsConfig{
			GlobalPath:    getEnv("VERSIONS_GLOBAL_PATH", "config/global_versions.yaml"),
			DocumentsPath: getEnv("VERSIONS_DOCUMENTS_PATH", "config/document_versions.yaml"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "OPENAI_API_KEY is required", ErrConfig)
	}
	if c.Pipeline.ExtractWorkers < 1 {
		return NewAppError("CONFIG_ERROR", "PIPELINE_EXTRACT_WORKERS must be >= 1", ErrConfig)
	}
	if c.LLM.MaxAttempts < 1 {
		return NewAppError("CONFIG_ERROR", "OPENAI_MAX_ATTEMPTS must be >= 1", ErrConfig)
	}
	return nil
}
