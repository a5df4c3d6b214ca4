package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	EvictDropOldest = "drop-oldest"
	EvictReject     = "reject"
)

type Config struct {
	Env      string
	LogLevel string

	HTTPAddress string
	APIToken    string
	JWTSecret   string
	JWTIssuer   string

	DBType       string
	DBDSN        string
	FileWorkouts string
	SQLitePath   string

	MaxHistory     int
	EvictionPolicy string

	Gyms string

	GeminiAPIKey     string
	GeminiModels     []string
	Temperature      float32
	TopK             float32
	TopP             float32
	MaxOutputTokens  int32
	AssistantTimeout time.Duration

	ChatSessionTTL time.Duration

	KafkaBrokers []string
	KafkaTopic   string
}

var (
	cfg    *Config
	cfgErr error
	once   sync.Once
)

// Load reads the .env file at path (skipped when missing) into the
// environment and builds a validated Config. The result is memoized.
func Load(path string) (*Config, error) {
	once.Do(func() {
		if err := loadDotEnv(path); err != nil {
			cfgErr = fmt.Errorf("config: reading %s: %w", path, err)
			return
		}
		cfg = New()
		if err := cfg.Validate(); err != nil {
			cfgErr = fmt.Errorf("invalid config: %w", err)
		}
	})
	return cfg, cfgErr
}

// New builds a Config from the current environment without memoizing it.
func New() *Config {
	return &Config{
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		HTTPAddress: getEnv("HTTP_ADDRESS", ":8088"),
		APIToken:    getEnv("API_TOKEN", "MOCK-TOKEN"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		JWTIssuer:   getEnv("JWT_ISSUER", "terpfit"),

		DBType:       getEnv("STORAGE_BACKEND", "file"),
		DBDSN:        getEnv("POSTGRES_DSN", ""),
		FileWorkouts: getEnv("WORKOUTS_FILE", "data/workouts.json"),
		SQLitePath:   getEnv("SQLITE_PATH", "data/terpfit.db"),

		MaxHistory:     getIntEnv("MAX_WORKOUT_HISTORY", 100),
		EvictionPolicy: getEnv("EVICTION_POLICY", EvictDropOldest),

		Gyms: getEnv("GYMS_FILE", ""),

		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModels:     splitAndTrim(getEnv("GEMINI_MODELS", "gemini-1.5-pro,gemini-1.5-flash,gemini-1.0-pro")),
		Temperature:      getFloatEnv("GEMINI_TEMPERATURE", 0.7),
		TopK:             getFloatEnv("GEMINI_TOP_K", 40),
		TopP:             getFloatEnv("GEMINI_TOP_P", 0.95),
		MaxOutputTokens:  int32(getIntEnv("GEMINI_MAX_OUTPUT_TOKENS", 1024)),
		AssistantTimeout: getDurationEnv("ASSISTANT_TIMEOUT", 30*time.Second),

		ChatSessionTTL: getDurationEnv("CHAT_SESSION_TTL", 30*time.Minute),

		KafkaBrokers: splitAndTrim(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "terpfit.workouts"),
	}
}

func (c *Config) Validate() error {
	switch c.DBType {
	case "postgres":
		if c.DBDSN == "" {
			return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
		}
	case "file":
		if c.FileWorkouts == "" {
			return errors.New("File storage requires WORKOUTS_FILE to be set")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("SQLite storage requires SQLITE_PATH to be set")
		}
	case "memory":
	default:
		return errors.New("STORAGE_BACKEND must be one of: file, sqlite, postgres, memory")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if c.Env != "development" && c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required outside development")
	}
	if c.EvictionPolicy != EvictDropOldest && c.EvictionPolicy != EvictReject {
		return errors.New("EVICTION_POLICY must be one of: drop-oldest, reject")
	}
	if len(c.GeminiModels) == 0 {
		return errors.New("GEMINI_MODELS must name at least one model")
	}
	if c.AssistantTimeout <= 0 {
		return errors.New("ASSISTANT_TIMEOUT must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getFloatEnv(key string, fallback float32) float32 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			return float32(parsed)
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// loadDotEnv sets KEY=VALUE pairs from path. Variables already present in the
// environment win.
func loadDotEnv(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if _, set := os.LookupEnv(key); !set {
			os.Setenv(key, value)
		}
	}
	return sc.Err()
}
