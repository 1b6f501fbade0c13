package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App        AppConfig
	Redis      RedisConfig
	Logger     LoggerConfig
	Auth       AuthConfig
	Navigation NavigationConfig
	Analytics  AnalyticsConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// RedisConfig holds Redis connection values. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level       string
	Development bool
}

// AuthConfig controls the simulated sign-in flow.
type AuthConfig struct {
	DemoPrefill     bool
	LoginDelayMS    int
	RegisterDelayMS int
	ResetDelayMS    int
	VerifyDelayMS   int
}

// NavigationConfig points at an optional route table override.
type NavigationConfig struct {
	RoutesFile string
}

// AnalyticsConfig controls the navigation event publisher.
type AnalyticsConfig struct {
	Channel    string
	BufferSize int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	env := getEnv("APP_ENV", "development")
	dev := env == "development"

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "estate-navigator"),
			Env:                   env,
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: dev,
		},
		Auth: AuthConfig{
			DemoPrefill:     getEnvAsBool("AUTH_DEMO_PREFILL", dev),
			LoginDelayMS:    getEnvAsInt("AUTH_LOGIN_DELAY_MS", 1500),
			RegisterDelayMS: getEnvAsInt("AUTH_REGISTER_DELAY_MS", 1500),
			ResetDelayMS:    getEnvAsInt("AUTH_RESET_DELAY_MS", 1500),
			VerifyDelayMS:   getEnvAsInt("AUTH_VERIFY_DELAY_MS", 1000),
		},
		Navigation: NavigationConfig{
			RoutesFile: os.Getenv("NAV_ROUTES_FILE"),
		},
		Analytics: AnalyticsConfig{
			Channel:    getEnv("ANALYTICS_CHANNEL", "estate:navigation"),
			BufferSize: getEnvAsInt("ANALYTICS_BUFFER_SIZE", 256),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	delays := map[string]int{
		"AUTH_LOGIN_DELAY_MS":    c.Auth.LoginDelayMS,
		"AUTH_REGISTER_DELAY_MS": c.Auth.RegisterDelayMS,
		"AUTH_RESET_DELAY_MS":    c.Auth.ResetDelayMS,
		"AUTH_VERIFY_DELAY_MS":   c.Auth.VerifyDelayMS,
	}
	for key, v := range delays {
		if v < 0 {
			return fmt.Errorf("invalid %s: must not be negative", key)
		}
	}
	if c.Analytics.BufferSize <= 0 {
		return fmt.Errorf("invalid ANALYTICS_BUFFER_SIZE: must be positive")
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Delay converts a millisecond setting to a duration.
func Delay(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
