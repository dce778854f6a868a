// Package config loads application configuration from the environment so main
// stays lean. A .env file is honored in development when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the complete application configuration.
type Config struct {
	Server   Server
	Postgres Postgres
	Redis    Redis
	Blob     Blob
	Model    Model
	Auth     Auth
	Staging  Staging
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// Postgres holds the durable store configuration.
type Postgres struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

// Redis holds the staging store configuration. An empty URL disables Redis
// and the in-memory staging stores are used instead.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Blob configures where uploaded document bytes land.
type Blob struct {
	Dir string
}

// Model configures the external generative model collaborator.
type Model struct {
	APIKey  string
	BaseURL string
	Name    string
	Timeout time.Duration
}

// Auth configures token issuance for signed-in users.
type Auth struct {
	JWTSigningKey string
	TokenTTL      time.Duration
}

// Staging bounds the lifetime of pre-compliance state: pending signups,
// temporary documents, and staged audit results.
type Staging struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

// FromEnv builds a Config from environment variables. The model API key is the
// one required secret: without it the analyzer cannot run at all, so absence is
// a startup failure rather than a degraded mode.
func FromEnv() (Config, error) {
	// Best effort; production sets real environment variables.
	_ = godotenv.Load()

	modelKey := os.Getenv("MODEL_API_KEY")
	if modelKey == "" {
		return Config{}, fmt.Errorf("MODEL_API_KEY is required")
	}

	cfg := Config{
		Server: Server{
			Addr:            envOr("VENDORGATE_ADDR", ":8080"),
			ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Postgres: Postgres{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Redis: Redis{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Blob: Blob{
			Dir: envOr("BLOB_DIR", "data/blobs"),
		},
		Model: Model{
			APIKey:  modelKey,
			BaseURL: envOr("MODEL_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
			Name:    envOr("MODEL_NAME", "gemini-2.0-flash"),
			Timeout: envDuration("MODEL_TIMEOUT", 60*time.Second),
		},
		Auth: Auth{
			JWTSigningKey: envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			TokenTTL:      envDuration("TOKEN_TTL", time.Hour),
		},
		Staging: Staging{
			TTL:           envDuration("STAGING_TTL", 24*time.Hour),
			SweepInterval: envDuration("STAGING_SWEEP_INTERVAL", time.Hour),
		},
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
