package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	HTTPPort        string
	JWTSecret       string
	JWTAudience     string
	LoginURL        string
	PageSize        int
	SessionTTL      time.Duration
	OperatorWorkers int
	RunMigrations   bool
	LogLevel        string
}

// In all cases the default behavior should be for the docker compose setup
var defaults = map[string]interface{}{
	"postgres_address":  "localhost",
	"postgres_port":     "5433",
	"postgres_db":       "postgres",
	"postgres_username": "postgres",
	"postgres_password": "testpassword",
	"http_port":         "9446",
	"jwt_secret":        "",
	"jwt_audience":      "",
	"login_url":         "/login",
	"page_size":         20,
	"session_ttl":       "30m",
	"operator_workers":  1,
	"run_migrations":    false,
	"log_level":         "info",
}

// ProcessEnvironmentVariables layers defaults, an optional YAML file named by CONFIG_FILE,
// and the process environment (including a local .env file), in that order.
func ProcessEnvironmentVariables() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	sessionTTL, err := time.ParseDuration(k.String("session_ttl"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	return &Config{
		PostgresAddress:  k.String("postgres_address"),
		PostgresPort:     k.String("postgres_port"),
		PostgresDB:       k.String("postgres_db"),
		PostgresUsername: k.String("postgres_username"),
		PostgresPassword: k.String("postgres_password"),
		HTTPPort:         k.String("http_port"),
		JWTSecret:        k.String("jwt_secret"),
		JWTAudience:      k.String("jwt_audience"),
		LoginURL:         k.String("login_url"),
		PageSize:         k.Int("page_size"),
		SessionTTL:       sessionTTL,
		OperatorWorkers:  k.Int("operator_workers"),
		RunMigrations:    k.Bool("run_migrations"),
		LogLevel:         k.String("log_level"),
	}, nil
}

// Validate reports settings the HTTP server cannot run without.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must be set"))
	}
	if c.PageSize < 1 {
		errs = append(errs, fmt.Errorf("PAGE_SIZE must be positive, got %d", c.PageSize))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL))
	}
	if c.OperatorWorkers < 1 {
		errs = append(errs, fmt.Errorf("OPERATOR_WORKERS must be positive, got %d", c.OperatorWorkers))
	}
	return errors.Join(errs...)
}

func (c *Config) PostgresDSN() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}
