// Package config loads server settings from the environment. A .env file in
// the working directory is read first when present; real environment
// variables always win.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds every setting the server reads at startup.
type Config struct {
	// AppEnv names the deployment, "development" unless APP_ENV says otherwise.
	AppEnv string

	Port   int
	DBPath string

	JWTSecret string
	TokenTTL  time.Duration

	LogLevel  string
	LogFormat string

	DefaultCurrency    string
	ServiceChargeRate  decimal.Decimal
	TaxRate            decimal.Decimal
	EnforcePortionSum  bool
	NotificationsLimit int

	// CORSOrigins lists the browser origins allowed to call the API.
	CORSOrigins []string
}

const (
	devEnv       = "development"
	devJWTSecret = "dev-secret-change-me"
)

// Load reads the optional .env file and then the environment.
func Load() (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		AppEnv:             strings.ToLower(getEnv("APP_ENV", devEnv)),
		Port:               getEnvInt("PORT", 8080),
		DBPath:             getEnv("DB_PATH", "./data/dinelink.db"),
		JWTSecret:          getEnv("JWT_SECRET", devJWTSecret),
		TokenTTL:           getEnvDuration("TOKEN_TTL", 24*time.Hour),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:          strings.ToLower(getEnv("LOG_FORMAT", "text")),
		DefaultCurrency:    strings.ToUpper(getEnv("DEFAULT_CURRENCY", "HKD")),
		EnforcePortionSum:  getEnvBool("ENFORCE_PORTION_SUM", true),
		NotificationsLimit: getEnvInt("NOTIFICATIONS_LIMIT", 50),
		CORSOrigins:        getEnvList("CORS_ALLOWED_ORIGINS", "*"),
	}

	var err error
	if cfg.ServiceChargeRate, err = getEnvRate("SERVICE_CHARGE_RATE", "0.10"); err != nil {
		return nil, err
	}
	if cfg.TaxRate, err = getEnvRate("TAX_RATE", "0"); err != nil {
		return nil, err
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("config: PORT out of range: %d", cfg.Port)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("config: LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}
	if cfg.DefaultCurrency == "" {
		return nil, errors.New("config: DEFAULT_CURRENCY must not be empty")
	}
	if !cfg.IsDevelopment() && cfg.UsingDevSecret() {
		return nil, fmt.Errorf("config: JWT_SECRET must be set when APP_ENV is %q", cfg.AppEnv)
	}
	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == devEnv
}

// UsingDevSecret reports whether JWT_SECRET was left unset.
func (c *Config) UsingDevSecret() bool {
	return c.JWTSecret == devJWTSecret
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvList splits a comma-separated value, dropping empty entries.
func getEnvList(key, fallback string) []string {
	var out []string
	for _, v := range strings.Split(getEnv(key, fallback), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnvBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return i
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// getEnvRate parses a fractional rate such as "0.10". Rates must lie in [0, 1].
func getEnvRate(key, fallback string) (decimal.Decimal, error) {
	raw := getEnv(key, fallback)
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("config: %s: %w", key, err)
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.Zero, fmt.Errorf("config: %s must be between 0 and 1, got %s", key, raw)
	}
	return rate, nil
}
