package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Catalog  CatalogConfig
	Security SecurityConfig
	CORS     CORSConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// DatabaseConfig selects and configures the collection store.
type DatabaseConfig struct {
	URL         string
	Driver      string // memory, postgres
	AutoMigrate bool
}

// CatalogConfig configures the upstream catalog client and its call discipline.
type CatalogConfig struct {
	APIKey         string
	BaseURL        string
	MaxConcurrency int
	RetryAttempts  uint
	RetryBaseDelay time.Duration
	RequestTimeout time.Duration
}

// Configured reports whether an upstream API key is present.
func (c CatalogConfig) Configured() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// SecurityConfig holds security-related settings
type SecurityConfig struct {
	JWTSecret string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	File   string
}

// Load reads configuration from environment variables, after loading any
// of the given env files that exist. Missing files are ignored.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				return nil, fmt.Errorf("load %s: %w", f, err)
			}
		}
	}

	cfg := &Config{}
	var errs []string
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err.Error())
		}
	}

	collect(cfg.loadServer())
	collect(cfg.loadDatabase())
	collect(cfg.loadCatalog())
	cfg.Security.JWTSecret = os.Getenv("AUTH_JWT_SECRET")
	cfg.CORS.AllowedOrigins = parseList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173"))
	cfg.Logging = LoggingConfig{
		Level:  strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
		Format: strings.ToLower(getEnvOrDefault("LOG_FORMAT", "json")),
		File:   os.Getenv("LOG_FILE"),
	}

	if len(errs) == 0 {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return nil, fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
}

func (c *Config) loadServer() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}
	c.Server.Port = port

	timeout, err := time.ParseDuration(getEnvOrDefault("SHUTDOWN_TIMEOUT", "15s"))
	if err != nil {
		return fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}
	c.Server.ShutdownTimeout = timeout
	return nil
}

func (c *Config) loadDatabase() error {
	c.Database.URL = os.Getenv("DATABASE_URL")

	driver := strings.ToLower(os.Getenv("STORE_DRIVER"))
	if driver == "" {
		driver = DriverMemory
		if c.Database.URL != "" {
			driver = DriverPostgres
		}
	}
	c.Database.Driver = driver

	autoMigrate, err := strconv.ParseBool(getEnvOrDefault("AUTO_MIGRATE", "false"))
	if err != nil {
		return fmt.Errorf("invalid AUTO_MIGRATE: %w", err)
	}
	c.Database.AutoMigrate = autoMigrate
	return nil
}

func (c *Config) loadCatalog() error {
	c.Catalog.APIKey = os.Getenv("TMDB_API_KEY")
	c.Catalog.BaseURL = os.Getenv("TMDB_BASE_URL")

	maxConcurrency, err := strconv.Atoi(getEnvOrDefault("CATALOG_MAX_CONCURRENCY", "15"))
	if err != nil {
		return fmt.Errorf("invalid CATALOG_MAX_CONCURRENCY: %w", err)
	}
	c.Catalog.MaxConcurrency = maxConcurrency

	attempts, err := strconv.ParseUint(getEnvOrDefault("CATALOG_RETRY_ATTEMPTS", "3"), 10, 32)
	if err != nil {
		return fmt.Errorf("invalid CATALOG_RETRY_ATTEMPTS: %w", err)
	}
	c.Catalog.RetryAttempts = uint(attempts)

	if c.Catalog.RetryBaseDelay, err = time.ParseDuration(getEnvOrDefault("CATALOG_RETRY_BASE_DELAY", "500ms")); err != nil {
		return fmt.Errorf("invalid CATALOG_RETRY_BASE_DELAY: %w", err)
	}
	if c.Catalog.RequestTimeout, err = time.ParseDuration(getEnvOrDefault("CATALOG_REQUEST_TIMEOUT", "10s")); err != nil {
		return fmt.Errorf("invalid CATALOG_REQUEST_TIMEOUT: %w", err)
	}
	return nil
}

// Validate checks that all required configuration is present and valid.
// A missing catalog API key is allowed; catalog calls then report it.
func (c *Config) Validate() error {
	var errors []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errors = append(errors, "PORT must be between 1 and 65535")
	}

	switch c.Database.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Database.URL == "" {
			errors = append(errors, "DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	default:
		errors = append(errors, "STORE_DRIVER must be one of: memory, postgres")
	}

	if c.Catalog.MaxConcurrency < 1 {
		errors = append(errors, "CATALOG_MAX_CONCURRENCY must be at least 1")
	}
	if c.Catalog.RetryAttempts < 1 {
		errors = append(errors, "CATALOG_RETRY_ATTEMPTS must be at least 1")
	}
	if c.Catalog.RetryBaseDelay < 0 {
		errors = append(errors, "CATALOG_RETRY_BASE_DELAY must not be negative")
	}
	if c.Catalog.RequestTimeout <= 0 {
		errors = append(errors, "CATALOG_REQUEST_TIMEOUT must be positive")
	}

	if c.Security.JWTSecret != "" && len(c.Security.JWTSecret) < 16 {
		errors = append(errors, "AUTH_JWT_SECRET must be at least 16 characters")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		errors = append(errors, "LOG_LEVEL must be one of: debug, info, warn, error")
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		errors = append(errors, "LOG_FORMAT must be one of: json, text")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
