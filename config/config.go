package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the complete application configuration
type Config struct {
	Server        ServerConfig
	Auth          AuthConfig
	Docs          DocsConfig
	CORS          CORSConfig
	Observability ObservabilityConfig
	Environment   string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host              string
	Port              int
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	RequestTimeout    time.Duration
}

// AuthConfig holds the JWT strategy configuration
type AuthConfig struct {
	Strategy  string // Name routes refer to when they require auth
	SecretKey string // Shared HMAC key used both to sign and to verify
	Algorithm string // HS256, HS384 or HS512
}

// DocsConfig holds API documentation metadata
type DocsConfig struct {
	Title       string
	Description string
	Version     string
}

// CORSConfig holds cross-origin settings
type CORSConfig struct {
	AllowedOrigins []string
	MaxAge         int
}

// ObservabilityConfig holds logging configuration
type ObservabilityConfig struct {
	LogLevel  string
	LogFormat string // json or console
}

// New creates a new Config instance by loading environment variables
func New(ctx context.Context) (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Host:              getEnv("SERVER_HOST", "localhost"),
			Port:              getPort(),
			ReadTimeout:       getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:      getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ReadHeaderTimeout: getEnvAsDuration("SERVER_READ_HEADER_TIMEOUT", 5*time.Second),
			ShutdownTimeout:   getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			RequestTimeout:    getEnvAsDuration("SERVER_REQUEST_TIMEOUT", 60*time.Second),
		},
		Auth: AuthConfig{
			Strategy:  getEnv("AUTH_STRATEGY", "jwt"),
			SecretKey: getEnv("AUTH_SECRET_KEY", "test-key"),
			Algorithm: getEnv("AUTH_ALGORITHM", "HS512"),
		},
		Docs: DocsConfig{
			Title:       getEnv("DOCS_TITLE", "Test API Documentation"),
			Description: getEnv("DOCS_DESCRIPTION", "This is a sample example of API documentation."),
			Version:     getEnv("DOCS_VERSION", "1.0.0"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:*", "https://*"}),
			MaxAge:         getEnvAsInt("CORS_MAX_AGE", 300),
		},
		Observability: ObservabilityConfig{
			LogLevel:  getEnv("LOG_LEVEL", "info"),
			LogFormat: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Default returns the built-in configuration without reading the environment
func Default() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host:              "localhost",
			Port:              1337,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			RequestTimeout:    60 * time.Second,
		},
		Auth: AuthConfig{
			Strategy:  "jwt",
			SecretKey: "test-key",
			Algorithm: "HS512",
		},
		Docs: DocsConfig{
			Title:       "Test API Documentation",
			Description: "This is a sample example of API documentation.",
			Version:     "1.0.0",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:*", "https://*"},
			MaxAge:         300,
		},
		Observability: ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "json",
		},
	}
}

// Validate checks if all required configuration fields are set
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", c.Server.Port)
	}
	if c.Server.ReadHeaderTimeout <= 0 {
		return fmt.Errorf("server read header timeout must be positive: %s", c.Server.ReadHeaderTimeout)
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("server request timeout must be positive: %s", c.Server.RequestTimeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server shutdown timeout must be positive: %s", c.Server.ShutdownTimeout)
	}

	if c.Auth.Strategy == "" {
		return fmt.Errorf("auth strategy name is required")
	}
	if c.Auth.SecretKey == "" {
		return fmt.Errorf("auth secret key is required")
	}
	switch c.Auth.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("unsupported auth algorithm %q: only HMAC algorithms are allowed", c.Auth.Algorithm)
	}

	if c.Observability.LogLevel == "" {
		return fmt.Errorf("log level is required")
	}

	return nil
}

// Address returns the HTTP server address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// URI returns the base URI the server is reachable on
func (c *ServerConfig) URI() string {
	return "http://" + c.Address()
}

// Helper functions

// getPort returns the server port from PORT or SERVER_PORT env vars (default: 1337)
func getPort() int {
	if value := os.Getenv("PORT"); value != "" {
		if p, err := strconv.Atoi(value); err == nil {
			return p
		}
	}
	if value := os.Getenv("SERVER_PORT"); value != "" {
		if p, err := strconv.Atoi(value); err == nil {
			return p
		}
	}
	return 1337
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

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
