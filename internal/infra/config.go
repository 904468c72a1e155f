package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Draft backends selectable through DRAFT_BACKEND.
const (
	DraftBackendMemory = "memory"
	DraftBackendFile   = "file"
	DraftBackendRedis  = "redis"
	DraftBackendSQLite = "sqlite"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string
	JWTSecret   string
	GeoIPDBPath string
	RedisURL    string

	DraftBackend     string
	DraftDir         string
	DraftRedisPrefix string
	DraftSQLitePath  string
	DraftDebounce    time.Duration

	PostingDefaultsFile string
	SessionIdleTTL      time.Duration
	SessionSweepSpec    string

	UpdatesChannel string
	CORSOrigins    []string

	BreakerMaxFailures uint32
	BreakerTimeout     time.Duration

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg, err := LoadToolConfig()
	if err != nil {
		return nil, err
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// LoadToolConfig loads the same settings without requiring the API-only
// secrets. Admin tools use it to reach the draft backend.
func LoadToolConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		GeoIPDBPath: os.Getenv("GEOIP_DB_PATH"),
		RedisURL:    os.Getenv("REDIS_URL"),

		DraftBackend:     strings.ToLower(getEnv("DRAFT_BACKEND", DraftBackendFile)),
		DraftDir:         getEnv("DRAFT_DIR", "./data/drafts"),
		DraftRedisPrefix: os.Getenv("DRAFT_REDIS_PREFIX"),
		DraftSQLitePath:  getEnv("DRAFT_SQLITE_PATH", "./data/drafts.db"),
		DraftDebounce:    time.Millisecond * time.Duration(getEnvInt("DRAFT_DEBOUNCE_MS", 500)),

		PostingDefaultsFile: os.Getenv("POSTING_DEFAULTS_FILE"),
		SessionIdleTTL:      getEnvDuration("SESSION_IDLE_TTL", 30*time.Minute),
		SessionSweepSpec:    getEnv("SESSION_SWEEP_SPEC", "@every 5m"),

		UpdatesChannel: getEnv("JOB_UPDATES_CHANNEL", "JOB_POSTING_UPDATED"),
		CORSOrigins:    splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),

		BreakerMaxFailures: uint32(getEnvInt("PERSIST_BREAKER_MAX_FAILURES", 5)),
		BreakerTimeout:     getEnvDuration("PERSIST_BREAKER_TIMEOUT", 30*time.Second),

		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
	}

	switch cfg.DraftBackend {
	case DraftBackendMemory, DraftBackendFile, DraftBackendSQLite:
	case DraftBackendRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required for the redis draft backend")
		}
	default:
		return nil, fmt.Errorf("unknown DRAFT_BACKEND %q", cfg.DraftBackend)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
