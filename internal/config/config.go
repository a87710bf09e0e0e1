package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"

	DefaultAPIURL     = "http://localhost:8080"
	DefaultListenAddr = ":8081"
	DefaultTimezone   = "Europe/Warsaw"
)

// Config holds everything read from the environment at startup.
type Config struct {
	APIURL     string
	Env        string
	ListenAddr string
	LogLevel   slog.Level
	// Location is the zone match times are entered and shown in.
	Location *time.Location
	Store    StoreConfig
	Devices  DevicesConfig
	Lambda   bool
}

// DevicesConfig bounds the in-memory sessions kept per browser.
type DevicesConfig struct {
	IdleTTL    time.Duration
	MaxDevices int
}

// StoreConfig selects the secret store: Postgres when a DSN is set, then
// SQLite when a path is set, otherwise memory.
type StoreConfig struct {
	PostgresDSN           string
	PostgresMigrationsDir string
	SQLitePath            string
	SQLiteMigrationsDir   string
	SecretKey             string
}

func (s StoreConfig) Kind() string {
	switch {
	case s.PostgresDSN != "":
		return "postgres"
	case s.SQLitePath != "":
		return "sqlite"
	}
	return "memory"
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	level, levelErr := parseLevel(getEnv("LOG_LEVEL", "info"))
	loc, locErr := time.LoadLocation(getEnv("APP_TIMEZONE", DefaultTimezone))
	if locErr != nil {
		locErr = fmt.Errorf("APP_TIMEZONE: %w", locErr)
	}
	idleTTL, ttlErr := time.ParseDuration(getEnv("DEVICE_IDLE_TTL", "30m"))
	if ttlErr != nil {
		ttlErr = fmt.Errorf("DEVICE_IDLE_TTL: %w", ttlErr)
	}
	maxDevices, maxErr := strconv.Atoi(getEnv("MAX_DEVICES", "10000"))
	if maxErr != nil {
		maxErr = fmt.Errorf("MAX_DEVICES: %w", maxErr)
	}
	cfg := &Config{
		APIURL:     strings.TrimRight(getEnv("API_URL", DefaultAPIURL), "/"),
		Env:        strings.ToLower(getEnv("APP", EnvDev)),
		ListenAddr: getEnv("LISTEN_ADDR", DefaultListenAddr),
		LogLevel:   level,
		Location:   loc,
		Devices:    DevicesConfig{IdleTTL: idleTTL, MaxDevices: maxDevices},
		Store: StoreConfig{
			PostgresDSN:           getEnv("POSTGRES_DSN", ""),
			PostgresMigrationsDir: getEnv("POSTGRES_MIGRATIONS_DIR", ""),
			SQLitePath:            getEnv("DB_PATH", ""),
			SQLiteMigrationsDir:   getEnv("DB_MIGRATIONS_DIR", ""),
			SecretKey:             os.Getenv("SECRET_STORE_KEY"),
		},
		Lambda: getEnv("AWS_LAMBDA_FUNCTION_NAME", "") != "",
	}
	if err := errors.Join(levelErr, locErr, ttlErr, maxErr, cfg.Validate()); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == EnvDev
}

func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}

func (c *Config) Validate() error {
	var errs []error
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, fmt.Errorf("API_URL must be an absolute http(s) URL, got %q", c.APIURL))
	}
	if c.Env != EnvDev && c.Env != EnvProd {
		errs = append(errs, fmt.Errorf("APP must be 'dev' or 'prod', got %q", c.Env))
	}
	if c.Devices.IdleTTL <= 0 {
		errs = append(errs, errors.New("DEVICE_IDLE_TTL must be positive"))
	}
	if c.Devices.MaxDevices <= 0 {
		errs = append(errs, errors.New("MAX_DEVICES must be positive"))
	}
	if !c.Lambda && c.ListenAddr == "" {
		errs = append(errs, errors.New("LISTEN_ADDR is required"))
	}
	return errors.Join(errs...)
}

func parseLevel(value string) (slog.Level, error) {
	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", value)
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
