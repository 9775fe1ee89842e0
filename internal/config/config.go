package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	RevocationMemory   = "memory"
	RevocationRedis    = "redis"
	RevocationPostgres = "postgres"

	minJWTSecretBytes = 16
)

type Config struct {
	ServerPort              string        `env:"SERVER_PORT" envDefault:"5003"`
	ServerReadHeaderTimeout time.Duration `env:"SERVER_READ_HEADER_TIMEOUT" envDefault:"10s"`
	ServerWriteTimeout      time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	ServerIdleTimeout       time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"120s"`
	RequestTimeout          time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	JWTSecret  string        `env:"JWT_SECRET"`
	// Session lifetime is one day unless overridden for tests or ops.
	JWTTTL     time.Duration `env:"JWT_TTL" envDefault:"24h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`

	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"postgres"`
	DatabaseURL    string `env:"DATABASE_URL"`
	DBMaxConns     int32  `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns     int32  `env:"DB_MIN_CONNS" envDefault:"2"`

	RevocationBackend       string        `env:"REVOCATION_BACKEND" envDefault:"memory"`
	RedisURL                string        `env:"REDIS_URL"`
	RevocationSweepInterval time.Duration `env:"REVOCATION_SWEEP_INTERVAL" envDefault:"5m"`

	CORSOrigins      []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
	RateLimitRPM     int      `env:"RATE_LIMIT_RPM" envDefault:"100"`
	AuthRateLimitRPM int      `env:"AUTH_RATE_LIMIT_RPM" envDefault:"10"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"pretty"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) normalize() {
	c.JWTSecret = strings.TrimSpace(c.JWTSecret)
	c.StorageBackend = strings.ToLower(strings.TrimSpace(c.StorageBackend))
	c.RevocationBackend = strings.ToLower(strings.TrimSpace(c.RevocationBackend))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))

	origins := c.CORSOrigins[:0]
	for _, origin := range c.CORSOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	c.CORSOrigins = origins
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if len(c.JWTSecret) < minJWTSecretBytes {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes", minJWTSecretBytes)
	}

	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}

	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	switch c.StorageBackend {
	case StorageMemory:
	case StoragePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required when STORAGE_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be %q or %q", StoragePostgres, StorageMemory)
	}

	switch c.RevocationBackend {
	case RevocationMemory:
	case RevocationRedis:
		if strings.TrimSpace(c.RedisURL) == "" {
			return fmt.Errorf("REDIS_URL is required when REVOCATION_BACKEND=redis")
		}
	case RevocationPostgres:
		if c.StorageBackend != StoragePostgres {
			return fmt.Errorf("REVOCATION_BACKEND=postgres requires STORAGE_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("REVOCATION_BACKEND must be %q, %q or %q", RevocationMemory, RevocationRedis, RevocationPostgres)
	}

	if c.RevocationSweepInterval <= 0 {
		return fmt.Errorf("REVOCATION_SWEEP_INTERVAL must be positive")
	}

	if c.LogFormat != "pretty" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be \"pretty\" or \"json\"")
	}

	return nil
}
