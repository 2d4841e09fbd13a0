package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverREST     = "rest"

	defaultAppPort     = "8080"
	defaultOrdersTable = "orders"
	defaultSessionTTL  = 30 * time.Minute
	defaultCORSOrigin  = "http://localhost:3000"
)

var (
	ErrUnknownDriver     = errors.New("unknown gateway driver")
	ErrMissingDBHost     = errors.New("DB_HOST is required for the postgres driver")
	ErrMissingRESTURL    = errors.New("SUPABASE_URL is required for the rest driver")
	ErrMissingRESTKey    = errors.New("SUPABASE_ANON_KEY is required for the rest driver")
	ErrMissingSessionKey = errors.New("SESSION_SECRET is required")
)

type Config struct {
	AppEnv  string
	AppPort string

	GatewayDriver string
	OrdersTable   string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	SupabaseURL     string
	SupabaseAnonKey string

	SessionSecret string
	SessionTTL    time.Duration

	AssetBaseURL  string
	AllowedOrigin string
}

// FromEnv reads the configuration from the process environment, applying
// defaults for optional keys. It does not validate.
func FromEnv() *Config {
	cfg := &Config{
		AppEnv:          os.Getenv("APP_ENV"),
		AppPort:         getEnv("APP_PORT", defaultAppPort),
		GatewayDriver:   strings.ToLower(getEnv("GATEWAY_DRIVER", DriverPostgres)),
		OrdersTable:     getEnv("ORDERS_TABLE", defaultOrdersTable),
		DBHost:          os.Getenv("DB_HOST"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          os.Getenv("DB_NAME"),
		DBPort:          os.Getenv("DB_PORT"),
		SupabaseURL:     strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
		SupabaseAnonKey: os.Getenv("SUPABASE_ANON_KEY"),
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		SessionTTL:      defaultSessionTTL,
		AssetBaseURL:    os.Getenv("ASSET_BASE_URL"),
		AllowedOrigin:   getEnv("CORS_ALLOWED_ORIGIN", defaultCORSOrigin),
	}

	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.SessionTTL = d
		}
	}

	return cfg
}

// Validate reports the first missing or inconsistent setting.
func (c *Config) Validate() error {
	switch c.GatewayDriver {
	case DriverPostgres:
		if c.DBHost == "" {
			return ErrMissingDBHost
		}
	case DriverREST:
		if c.SupabaseURL == "" {
			return ErrMissingRESTURL
		}
		if c.SupabaseAnonKey == "" {
			return ErrMissingRESTKey
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.GatewayDriver)
	}

	if c.SessionSecret == "" {
		return ErrMissingSessionKey
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// LoadConfig reads an optional .env file, then the environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("environment variables not loaded properly: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
