package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHost              = "localhost"
	defaultPort              = "8000"
	defaultReadHeaderTimeout = "20s"
	defaultShutdownTimeout   = "4s"
	defaultStaticDir         = "./web"
	defaultBookingIDBase     = "1000"
	defaultStaffUsername     = "admin"
	defaultStaffPassword     = "1234"
	defaultCORSOrigins       = "*"
	defaultDebug             = "false"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Host              string
	Port              string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	StaticDir         string
	CatalogFile       string
	SeedFile          string
	BookingIDBase     int
	StaffUsername     string
	StaffPassword     string
	CORSOrigins       []string
	Debug             bool
}

// Load reads HOTEL_* environment variables, falling back to defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Host:          strings.TrimSpace(getEnv("HOTEL_HOST", defaultHost)),
		Port:          strings.TrimSpace(getEnv("HOTEL_PORT", defaultPort)),
		StaticDir:     strings.TrimSpace(getEnv("HOTEL_STATIC_DIR", defaultStaticDir)),
		CatalogFile:   strings.TrimSpace(getEnv("HOTEL_CATALOG_FILE", "")),
		SeedFile:      strings.TrimSpace(getEnv("HOTEL_SEED_FILE", "")),
		StaffUsername: strings.TrimSpace(getEnv("HOTEL_STAFF_USERNAME", defaultStaffUsername)),
		StaffPassword: getEnv("HOTEL_STAFF_PASSWORD", defaultStaffPassword),
		CORSOrigins:   splitList(getEnv("HOTEL_CORS_ORIGINS", defaultCORSOrigins)),
	}

	var err error

	cfg.ReadHeaderTimeout, err = parseDurationEnv("HOTEL_READ_HEADER_TIMEOUT", defaultReadHeaderTimeout)
	if err != nil {
		return nil, err
	}

	cfg.ShutdownTimeout, err = parseDurationEnv("HOTEL_SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
	if err != nil {
		return nil, err
	}

	cfg.BookingIDBase, err = parseIntEnv("HOTEL_BOOKING_ID_BASE", defaultBookingIDBase)
	if err != nil {
		return nil, err
	}

	cfg.Debug, err = parseBoolEnv("HOTEL_DEBUG", defaultDebug)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Port == "" {
		return fmt.Errorf("HOTEL_PORT must not be empty: %w", ErrInvalidConfig)
	}

	if cfg.ReadHeaderTimeout <= 0 {
		return fmt.Errorf("HOTEL_READ_HEADER_TIMEOUT must be > 0: %w", ErrInvalidConfig)
	}

	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("HOTEL_SHUTDOWN_TIMEOUT must be > 0: %w", ErrInvalidConfig)
	}

	if cfg.BookingIDBase < 1 {
		return fmt.Errorf("HOTEL_BOOKING_ID_BASE must be >= 1: %w", ErrInvalidConfig)
	}

	if cfg.StaffUsername == "" || cfg.StaffPassword == "" {
		return fmt.Errorf("HOTEL_STAFF_USERNAME and HOTEL_STAFF_PASSWORD must not be empty: %w", ErrInvalidConfig)
	}

	return nil
}

func getEnv(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}

	return fallback
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}

	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}

	return n, nil
}

func parseBoolEnv(name, fallback string) (bool, error) {
	value := strings.TrimSpace(getEnv(name, fallback))

	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}

	return b, nil
}

func splitList(raw string) []string {
	var out []string

	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
