package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, 20*time.Second, cfg.ReadHeaderTimeout)
	assert.Equal(t, 4*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 1000, cfg.BookingIDBase)
	assert.Equal(t, "admin", cfg.StaffUsername)
	assert.Equal(t, "1234", cfg.StaffPassword)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.CatalogFile)
	assert.Empty(t, cfg.SeedFile)
	assert.False(t, cfg.Debug)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HOTEL_PORT", "9090")
	t.Setenv("HOTEL_BOOKING_ID_BASE", "5000")
	t.Setenv("HOTEL_CORS_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("HOTEL_SHUTDOWN_TIMEOUT", "10s")
	t.Setenv("HOTEL_DEBUG", "true")
	t.Setenv("HOTEL_SEED_FILE", " seed.yaml ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 5000, cfg.BookingIDBase)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "seed.yaml", cfg.SeedFile)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "bad duration", key: "HOTEL_READ_HEADER_TIMEOUT", value: "soon"},
		{name: "zero duration", key: "HOTEL_SHUTDOWN_TIMEOUT", value: "0s"},
		{name: "bad id base", key: "HOTEL_BOOKING_ID_BASE", value: "many"},
		{name: "zero id base", key: "HOTEL_BOOKING_ID_BASE", value: "0"},
		{name: "empty port", key: "HOTEL_PORT", value: " "},
		{name: "empty password", key: "HOTEL_STAFF_PASSWORD", value: ""},
		{name: "bad bool", key: "HOTEL_DEBUG", value: "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
