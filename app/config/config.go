package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTP     HTTPConfig
	Database DatabaseConfig
	LogMode  string
}

type HTTPConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate bool
}

// DSN returns the connection URL understood by both pgx and lib/pq.
func (c DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

// Load reads envFile when it exists, then the process environment. A missing
// file is not an error; variables already set in the environment win.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	timeouts := map[string]time.Duration{
		"HTTP_READ_TIMEOUT":  5 * time.Second,
		"HTTP_WRITE_TIMEOUT": 10 * time.Second,
		"HTTP_IDLE_TIMEOUT":  60 * time.Second,
		"SHUTDOWN_TIMEOUT":   10 * time.Second,
	}
	for key, def := range timeouts {
		d, err := parseDurationEnv(key, def)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", key, err)
		}
		timeouts[key] = d
	}

	autoMigrate, err := parseBoolEnv("DB_AUTO_MIGRATE", false)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_AUTO_MIGRATE: %w", err)
	}

	user := os.Getenv("POSTGRES_USER")
	if user == "" {
		return nil, errors.New("POSTGRES_USER is required")
	}
	name := os.Getenv("POSTGRES_DB")
	if name == "" {
		return nil, errors.New("POSTGRES_DB is required")
	}

	return &Config{
		HTTP: HTTPConfig{
			Addr:            getEnvOrDefault("HTTP_ADDR", ":8080"),
			ReadTimeout:     timeouts["HTTP_READ_TIMEOUT"],
			WriteTimeout:    timeouts["HTTP_WRITE_TIMEOUT"],
			IdleTimeout:     timeouts["HTTP_IDLE_TIMEOUT"],
			ShutdownTimeout: timeouts["SHUTDOWN_TIMEOUT"],
		},
		Database: DatabaseConfig{
			Host:        getEnvOrDefault("POSTGRES_HOST", "localhost"),
			Port:        getEnvOrDefault("POSTGRES_PORT", "5432"),
			User:        user,
			Password:    os.Getenv("POSTGRES_PASSWORD"),
			Name:        name,
			SSLMode:     getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
			AutoMigrate: autoMigrate,
		},
		LogMode: getEnvOrDefault("LOG_MODE", "dev"),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}
	return defaultValue, nil
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	if v := os.Getenv(key); v != "" {
		return strconv.ParseBool(v)
	}
	return defaultValue, nil
}
