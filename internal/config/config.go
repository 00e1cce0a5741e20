package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// MaxFieldSamples caps FIELD_EXTENT/FIELD_STEP. A 4096×4096 grid is 128 MiB
// of float64s.
const MaxFieldSamples = 4096

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	Field    FieldConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// Retain is how many archived snapshots survive a prune. Zero disables pruning.
	Retain int
}

type LoggingConfig struct {
	Level      string
	Format     string
	Structured bool
}

// FieldConfig controls the periodic regeneration of the noise field.
type FieldConfig struct {
	// Step is the distance between neighbouring samples in lattice units.
	Step float64
	// Extent is the side of the sampled square in lattice units.
	Extent   float64
	Interval time.Duration
	Palette  string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnvStr("PORT", "8080"),
			ReadTimeout:     getEnvDuration("READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     getEnvDuration("IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Path:            getEnvStr("DB_PATH", "./noise.db"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 1),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 1),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			Retain:          getEnvInt("SNAPSHOT_RETAIN", 50),
		},
		Logging: LoggingConfig{
			Level:      getEnvStr("LOG_LEVEL", "info"),
			Format:     getEnvStr("LOG_FORMAT", "text"),
			Structured: getEnvBool("LOG_STRUCTURED", true),
		},
		Field: FieldConfig{
			Step:     getEnvFloat("FIELD_STEP", 1.0/64),
			Extent:   getEnvFloat("FIELD_EXTENT", 8),
			Interval: getEnvDuration("FIELD_INTERVAL", 5*time.Second),
			Palette:  getEnvStr("FIELD_PALETTE", "grayscale"),
		},
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("%w: PORT is empty", ErrInvalidConfig)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("%w: DB_PATH is empty", ErrInvalidConfig)
	}
	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("%w: DB_MAX_OPEN_CONNS must be at least 1, got %d", ErrInvalidConfig, c.Database.MaxOpenConns)
	}
	if c.Database.Retain < 0 {
		return fmt.Errorf("%w: SNAPSHOT_RETAIN must not be negative, got %d", ErrInvalidConfig, c.Database.Retain)
	}
	if !isPositive(c.Field.Step) {
		return fmt.Errorf("%w: FIELD_STEP must be positive, got %g", ErrInvalidConfig, c.Field.Step)
	}
	if !isPositive(c.Field.Extent) {
		return fmt.Errorf("%w: FIELD_EXTENT must be positive, got %g", ErrInvalidConfig, c.Field.Extent)
	}
	if n := math.Floor(c.Field.Extent / c.Field.Step); n < 1 || n > MaxFieldSamples {
		return fmt.Errorf("%w: FIELD_EXTENT/FIELD_STEP must give 1 to %d samples, got %g", ErrInvalidConfig, MaxFieldSamples, n)
	}
	if c.Field.Interval <= 0 {
		return fmt.Errorf("%w: FIELD_INTERVAL must be positive, got %s", ErrInvalidConfig, c.Field.Interval)
	}
	return nil
}

func isPositive(f float64) bool {
	return f > 0 && !math.IsInf(f, 1)
}

func getEnvStr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
