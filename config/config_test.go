//go:build !integration

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/guttosm/parcel-service/internal/packing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var managedKeys = []string{
	"PORT", "RATE_LIMIT", "RATE_WINDOW", "CORS_ORIGINS", "REQUEST_TIMEOUT", "SWAGGER_USER", "SWAGGER_PASS",
	"CACHE_SIZE", "CACHE_TTL", "AUTH_ENABLED", "API_KEYS", "JWT_SECRET_KEY",
	"MONGODB_URI", "MONGODB_DATABASE", "MONGODB_LOGS_TTL", "MONGODB_ENABLED", "MONGODB_SEED",
	"CIRCUIT_BREAKER_FAILURE_THRESHOLD", "CIRCUIT_BREAKER_SUCCESS_THRESHOLD", "CIRCUIT_BREAKER_TIMEOUT",
	"CARRIER_REFRESH_INTERVAL", "LOG_LEVEL", "LOG_PRETTY",
	"PACKING_PLACER_TIMEOUT", "PACKING_MAX_ITEMS", "PACKING_CONTAINERS",
}

// clearEnv blanks every variable the loader reads for the duration of t.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range managedKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 100, cfg.Server.RateLimit)
	assert.Equal(t, time.Minute, cfg.Server.RateWindow)
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
	assert.Nil(t, cfg.Server.CORSOrigins)
	assert.Equal(t, 1000, cfg.Cache.Size)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.False(t, cfg.Auth.Enabled)
	assert.Nil(t, cfg.Auth.APIKeys)
	assert.Empty(t, cfg.Auth.JWTSecretKey)
	assert.Equal(t, "parcel_service", cfg.Database.DatabaseName)
	assert.False(t, cfg.Database.Enabled)
	assert.True(t, cfg.Database.Seed)
	assert.Equal(t, 5*time.Minute, cfg.Carriers.RefreshInterval)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
	assert.Equal(t, 2*time.Second, cfg.Packing.PlacerTimeout)
	assert.Equal(t, 200, cfg.Packing.MaxItems)
	assert.Nil(t, cfg.Packing.Containers)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("RATE_LIMIT", "50")
	t.Setenv("RATE_WINDOW", "30s")
	t.Setenv("CORS_ORIGINS", " https://shop.example , http://localhost:3000 ")
	t.Setenv("CACHE_SIZE", "0")
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("API_KEYS", " key1 , key2 ,")
	t.Setenv("JWT_SECRET_KEY", "s3cret")
	t.Setenv("MONGODB_ENABLED", "true")
	t.Setenv("MONGODB_SEED", "false")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_PRETTY", "true")
	t.Setenv("PACKING_PLACER_TIMEOUT", "500ms")
	t.Setenv("PACKING_MAX_ITEMS", "20")
	t.Setenv("PACKING_CONTAINERS", "Nekoposu:312x228x30;Compact:250x200x50")

	cfg := FromEnv()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 50, cfg.Server.RateLimit)
	assert.Equal(t, 30*time.Second, cfg.Server.RateWindow)
	assert.Equal(t, []string{"https://shop.example", "http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 0, cfg.Cache.Size)
	assert.True(t, cfg.Auth.Enabled)
	assert.Equal(t, map[string]bool{"key1": true, "key2": true}, cfg.Auth.APIKeys)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecretKey)
	assert.True(t, cfg.Database.Enabled)
	assert.False(t, cfg.Database.Seed)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
	assert.Equal(t, 500*time.Millisecond, cfg.Packing.PlacerTimeout)
	assert.Equal(t, 20, cfg.Packing.MaxItems)
	assert.Equal(t, []packing.Container{
		{Name: "Nekoposu", Length: 312, Width: 228, Height: 30},
		{Name: "Compact", Length: 250, Width: 200, Height: 50},
	}, cfg.Packing.Containers)
}

func TestFromEnv_InvalidValuesKeepDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("RATE_LIMIT", "many")
	t.Setenv("AUTH_ENABLED", "maybe")
	t.Setenv("RATE_WINDOW", "soon")
	t.Setenv("PACKING_CONTAINERS", "Nekoposu:312x228")

	cfg := FromEnv()

	assert.Equal(t, 100, cfg.Server.RateLimit)
	assert.False(t, cfg.Auth.Enabled)
	assert.Equal(t, time.Minute, cfg.Server.RateWindow)
	assert.Nil(t, cfg.Packing.Containers)
}

func TestParseContainers(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []packing.Container
		wantErr bool
	}{
		{name: "empty", in: ""},
		{name: "single", in: "box:100x200x300", want: []packing.Container{{Name: "box", Length: 100, Width: 200, Height: 300}}},
		{name: "spaces and upper case X", in: " Letter Pack : 340X248X70 ; ", want: []packing.Container{{Name: "Letter Pack", Length: 340, Width: 248, Height: 70}}},
		{name: "missing name", in: ":1x2x3", wantErr: true},
		{name: "missing colon", in: "1x2x3", wantErr: true},
		{name: "zero side", in: "flat:100x100x0", wantErr: true},
		{name: "decimal side", in: "box:10.5x10x10", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseContainers(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=warn\nPORT=7070\n"), 0o600))
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))
	t.Setenv("PORT", "6060")
	t.Chdir(dir)

	cfg := Load()

	assert.Equal(t, "6060", cfg.Server.Port, "set variables win over .env")
	assert.Equal(t, "warn", cfg.Log.Level)
}
