// Package config loads the parcel service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/parcel-service/internal/packing"
	"github.com/joho/godotenv"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Database DatabaseConfig
	Carriers CarrierConfig
	Log      LogConfig
	Packing  PackingConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string
	RateLimit      int
	RateWindow     time.Duration
	CORSOrigins    []string
	RequestTimeout time.Duration
	SwaggerUser    string
	SwaggerPass    string
}

// CacheConfig sizes the packing result cache. Size 0 disables it.
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// AuthConfig holds API key and bearer token settings. API_KEYS entries may be
// bcrypt hashes; in a .env file quote them with single quotes so godotenv
// does not expand the "$" segments.
type AuthConfig struct {
	Enabled      bool
	APIKeys      map[string]bool
	JWTSecretKey string
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
	Enabled      bool
	// Seed writes the default catalog into empty collections on start.
	Seed bool

	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// CarrierConfig controls how often carrier limits are re-read.
type CarrierConfig struct {
	RefreshInterval time.Duration
}

// LogConfig holds zerolog settings.
type LogConfig struct {
	Level  string
	Pretty bool
}

// PackingConfig tunes the packing engine.
type PackingConfig struct {
	PlacerTimeout time.Duration
	MaxItems      int
	// Containers replaces the built-in container hypotheses when set.
	Containers []packing.Container
}

// Load reads .env when present, then builds a Config from environment
// variables. Variables already set take precedence over .env.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() Config {
	return Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RateLimit:      getEnvInt("RATE_LIMIT", 100),
			RateWindow:     getEnvDuration("RATE_WINDOW", time.Minute),
			CORSOrigins:    parseList(os.Getenv("CORS_ORIGINS")),
			RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
			SwaggerUser:    getEnv("SWAGGER_USER", ""),
			SwaggerPass:    getEnv("SWAGGER_PASS", ""),
		},
		Cache: CacheConfig{
			Size: getEnvInt("CACHE_SIZE", 1000),
			TTL:  getEnvDuration("CACHE_TTL", 5*time.Minute),
		},
		Auth: AuthConfig{
			Enabled:      getEnvBool("AUTH_ENABLED", false),
			APIKeys:      parseAPIKeys(os.Getenv("API_KEYS")),
			JWTSecretKey: getEnv("JWT_SECRET_KEY", ""),
		},
		Database: DatabaseConfig{
			URI:                            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   getEnv("MONGODB_DATABASE", "parcel_service"),
			LogsTTL:                        getEnvDuration("MONGODB_LOGS_TTL", 30*24*time.Hour),
			Enabled:                        getEnvBool("MONGODB_ENABLED", false),
			Seed:                           getEnvBool("MONGODB_SEED", true),
			CircuitBreakerFailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
		Carriers: CarrierConfig{
			RefreshInterval: getEnvDuration("CARRIER_REFRESH_INTERVAL", 5*time.Minute),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
		Packing: PackingConfig{
			PlacerTimeout: getEnvDuration("PACKING_PLACER_TIMEOUT", 2*time.Second),
			MaxItems:      getEnvInt("PACKING_MAX_ITEMS", 200),
			Containers:    parseContainersOrNil(os.Getenv("PACKING_CONTAINERS")),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			result = append(result, v)
		}
	}
	return result
}

func parseAPIKeys(s string) map[string]bool {
	keys := parseList(s)
	if len(keys) == 0 {
		return nil
	}
	result := make(map[string]bool, len(keys))
	for _, k := range keys {
		result[k] = true
	}
	return result
}

// ParseContainers parses "name:LxWxH;name:LxWxH" with sides in millimeters.
func ParseContainers(s string) ([]packing.Container, error) {
	var out []packing.Container
	for _, entry := range strings.Split(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, dims, ok := strings.Cut(entry, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("container %q: want name:LxWxH", entry)
		}
		sides := strings.Split(strings.ToLower(dims), "x")
		if len(sides) != 3 {
			return nil, fmt.Errorf("container %q: want three sides", entry)
		}
		var v [3]int
		for i, side := range sides {
			n, err := strconv.Atoi(strings.TrimSpace(side))
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("container %q: side %q must be a positive integer", entry, side)
			}
			v[i] = n
		}
		out = append(out, packing.Container{Name: strings.TrimSpace(name), Length: v[0], Width: v[1], Height: v[2]})
	}
	return out, nil
}

// parseContainersOrNil keeps the built-in hypotheses when the variable is
// unset or malformed.
func parseContainersOrNil(s string) []packing.Container {
	if s == "" {
		return nil
	}
	cs, err := ParseContainers(s)
	if err != nil || len(cs) == 0 {
		return nil
	}
	return cs
}
