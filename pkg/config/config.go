package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Data sourcing modes
const (
	DataModeAuto   = "auto"   // 토큰 있으면 live, 없으면 sample
	DataModeLive   = "live"   // 항상 외부 API 호출
	DataModeSample = "sample" // 내장 샘플 데이터만 사용
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Storage
	DataDir  string        // 스냅샷/설정/캐시 루트 디렉터리
	CacheTTL time.Duration // 가격/지표 캐시 유효기간

	// Database (optional; file store is used when URL is empty)
	Database DatabaseConfig

	// Redis (optional cache in front of the disk cache)
	Redis RedisConfig

	// Market data providers
	Finnhub    ProviderConfig
	TwelveData ProviderConfig
	FMP        ProviderConfig

	// Data sourcing
	DataMode      string // auto, live, sample
	WatchlistPath string // 빈 값이면 기본 경로 탐색

	// Scheduler (6-field cron, 초 단위 포함)
	RefreshSchedule string
	PurgeSchedule   string

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string // 빈 값이면 JSON 파일 저장소 사용

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// ProviderConfig holds one market data provider's credentials and limits
type ProviderConfig struct {
	Token             string
	BaseURL           string
	RequestsPerMinute int // rate limiter 기준
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	// Try multiple paths for .env file
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		// Storage
		DataDir:  getEnv("DATA_DIR", defaultDataDir()),
		CacheTTL: getEnvAsDuration("CACHE_TTL", "6h"),

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		// Market data providers
		Finnhub: ProviderConfig{
			Token:             getEnv("FINNHUB_TOKEN", ""),
			BaseURL:           getEnv("FINNHUB_BASE_URL", "https://finnhub.io/api/v1"),
			RequestsPerMinute: getEnvAsInt("FINNHUB_RATE_LIMIT", 60),
		},
		TwelveData: ProviderConfig{
			Token:             getEnv("TWELVE_DATA_TOKEN", ""),
			BaseURL:           getEnv("TWELVE_DATA_BASE_URL", "https://api.twelvedata.com"),
			RequestsPerMinute: getEnvAsInt("TWELVE_DATA_RATE_LIMIT", 8),
		},
		FMP: ProviderConfig{
			Token:             getEnv("FMP_TOKEN", ""),
			BaseURL:           getEnv("FMP_BASE_URL", "https://financialmodelingprep.com/api/v3"),
			RequestsPerMinute: getEnvAsInt("FMP_RATE_LIMIT", 120),
		},

		// Data sourcing
		DataMode:      getEnv("DATA_MODE", DataModeAuto),
		WatchlistPath: getEnv("WATCHLIST_PATH", ""),

		// Scheduler
		RefreshSchedule: getEnv("REFRESH_SCHEDULE", "0 0 6 * * *"),
		PurgeSchedule:   getEnv("PURGE_SCHEDULE", "0 0 3 * * 0"),

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" && c.Env != "test" {
		return fmt.Errorf("ENV must be one of: development, staging, production, test")
	}

	switch c.DataMode {
	case DataModeAuto, DataModeLive, DataModeSample:
	default:
		return fmt.Errorf("DATA_MODE must be one of: auto, live, sample")
	}

	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}

	if c.DataMode == DataModeLive && !c.LiveDataConfigured() {
		return fmt.Errorf("DATA_MODE=live requires at least one provider token (FINNHUB_TOKEN, TWELVE_DATA_TOKEN, FMP_TOKEN)")
	}

	return nil
}

// LiveDataConfigured reports whether any provider token is present.
func (c *Config) LiveDataConfigured() bool {
	return c.Finnhub.Token != "" || c.TwelveData.Token != "" || c.FMP.Token != ""
}

// UseSampleData resolves the effective data source after mode semantics:
// sample forces samples, live forces providers, auto follows token presence.
func (c *Config) UseSampleData() bool {
	switch c.DataMode {
	case DataModeSample:
		return true
	case DataModeLive:
		return false
	default:
		return !c.LiveDataConfigured()
	}
}

// Derived storage paths. 파일 이름 규칙은 여기서만 정의.

// WeightsPath is the JSON file holding persisted factor weights.
func (c *Config) WeightsPath() string {
	return filepath.Join(c.DataDir, "weights.json")
}

// PreferencesPath is the JSON file holding user preferences.
func (c *Config) PreferencesPath() string {
	return filepath.Join(c.DataDir, "preferences.json")
}

// SnapshotHistoryPath is the JSON file holding ranking snapshots.
func (c *Config) SnapshotHistoryPath() string {
	return filepath.Join(c.DataDir, "runs.json")
}

// CacheDir is the root directory for cached provider payloads.
func (c *Config) CacheDir() string {
	return filepath.Join(c.DataDir, "cache")
}

// Helper functions (private, only used within this file)

// defaultDataDir resolves ~/.breakout, falling back to a relative
// directory when the home directory is unavailable.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".breakout"
	}
	return filepath.Join(home, ".breakout")
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	// Try paths in order of priority
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
