package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultAppEnv          = "dev"
	defaultHTTPPort        = 8080
	defaultDatabaseURL     = "hotel.db"
	defaultLockTTL         = "10s"
	defaultLockWait        = "5s"
	defaultListingOverlap  = "inclusive"
	defaultRateLimitRPS    = 50.0
	defaultRateLimitBurst  = 100
	defaultLogLevel        = "info"
	defaultShutdownTimeout = "10s"
)

type Config struct {
	AppEnv          string        `mapstructure:"app_env"`
	HTTPPort        int           `mapstructure:"http_port"`
	DatabaseURL     string        `mapstructure:"database_url"`
	RedisURL        string        `mapstructure:"redis_url"`
	LockTTL         time.Duration `mapstructure:"lock_ttl"`
	LockWait        time.Duration `mapstructure:"lock_wait"`
	ListingOverlap  string        `mapstructure:"listing_overlap"`
	RateLimit       bool          `mapstructure:"rate_limit_enabled"`
	RateLimitRPS    float64       `mapstructure:"rate_limit_rps"`
	RateLimitBurst  int           `mapstructure:"rate_limit_burst"`
	CORSOrigins     []string      `mapstructure:"-"`
	LogLevel        string        `mapstructure:"log_level"`
	MetricsEnabled  bool          `mapstructure:"metrics_enabled"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Load reads an optional .env file, an optional config file named by
// CONFIG_FILE, then environment variables. Env wins over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", defaultAppEnv)
	v.SetDefault("http_port", defaultHTTPPort)
	v.SetDefault("database_url", defaultDatabaseURL)
	v.SetDefault("redis_url", "")
	v.SetDefault("lock_ttl", defaultLockTTL)
	v.SetDefault("lock_wait", defaultLockWait)
	v.SetDefault("listing_overlap", defaultListingOverlap)
	v.SetDefault("rate_limit_enabled", false)
	v.SetDefault("rate_limit_rps", defaultRateLimitRPS)
	v.SetDefault("rate_limit_burst", defaultRateLimitBurst)
	v.SetDefault("cors_allowed_origins", "")
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("metrics_enabled", true)
	v.SetDefault("shutdown_timeout", defaultShutdownTimeout)
}

func fromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	cfg.RedisURL = strings.TrimSpace(cfg.RedisURL)
	cfg.ListingOverlap = strings.ToLower(strings.TrimSpace(cfg.ListingOverlap))
	cfg.CORSOrigins = splitList(v.GetString("cors_allowed_origins"))

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT must be in 1..65535")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.LockTTL <= 0 {
		return fmt.Errorf("LOCK_TTL must be > 0")
	}
	if cfg.LockWait <= 0 {
		return fmt.Errorf("LOCK_WAIT must be > 0")
	}
	if cfg.ListingOverlap != "inclusive" && cfg.ListingOverlap != "strict" {
		return fmt.Errorf("LISTING_OVERLAP must be one of: inclusive, strict")
	}
	if cfg.RateLimit && (cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0) {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be > 0 when rate limiting is enabled")
	}
	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be > 0")
	}

	if cfg.IsProdLike() && !IsPostgresDSN(cfg.DatabaseURL) {
		return fmt.Errorf("in prod/release DATABASE_URL must point to PostgreSQL")
	}

	return nil
}

func (c *Config) IsProdLike() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production" || c.AppEnv == "release"
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
