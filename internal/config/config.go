package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backend names accepted by STORAGE_BACKEND
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendMemory   = "memory"
)

type Config struct {
	Port        string
	Environment string

	StorageBackend string
	DataDir        string
	DatabaseURL    string
	MongoURI       string
	MongoDatabase  string

	RedisURL     string
	CacheEnabled bool
	CacheTTL     time.Duration

	RecountMovements bool
	AllowedOrigins   []string

	Events EventConfig
}

// LoadEnvFile loads an explicit dotenv file. Variables already set in the
// environment keep their values.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func LoadConfig() (*Config, error) {
	// A missing .env file is fine; real environment variables win either way
	_ = godotenv.Load()

	environment := getEnv("ENVIRONMENT", "development")

	defaultPublisher := "mock"
	if environment == "production" {
		defaultPublisher = "kafka"
	}

	cfg := &Config{
		Port:             getEnv("PORT", "8000"),
		Environment:      environment,
		StorageBackend:   getEnv("STORAGE_BACKEND", BackendFile),
		DataDir:          getEnv("DATA_DIR", "assessment_data"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		MongoURI:         getEnv("MONGO_URI", ""),
		MongoDatabase:    getEnv("MONGO_DATABASE", "assessment_tracking"),
		RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379"),
		CacheEnabled:     getBoolEnv("CACHE_ENABLED", false),
		CacheTTL:         getDurationEnv("CACHE_TTL", 5*time.Minute),
		RecountMovements: getBoolEnv("ANALYTICS_RECOUNT_MOVEMENTS", false),
		AllowedOrigins:   getSliceEnv("ALLOWED_ORIGINS"),
		Events: EventConfig{
			Enabled:         getBoolEnv("EVENTS_ENABLED", true),
			Publisher:       getEnv("EVENTS_PUBLISHER", defaultPublisher),
			KafkaBrokers:    getEnv("KAFKA_BROKERS", "localhost:9092"),
			SubmissionTopic: getEnv("SUBMISSION_TOPIC", "assessment-submissions"),
			ReportTopic:     getEnv("REPORT_TOPIC", "assessment-reports"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects configurations the server cannot start with
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendFile:
		if c.DataDir == "" {
			return fmt.Errorf("DATA_DIR is required for the file storage backend")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres storage backend")
		}
	case BackendMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required for the mongo storage backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}

	if c.CacheEnabled && c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required when caching is enabled")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getSliceEnv(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
