package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	SessionSecret string        // Required in prod: HMAC key for session cookies
	SessionTTL    time.Duration // Session cookie lifetime (default: 24h)

	StoreDriver  string // Store driver (jsonfile, sqlite) (default: jsonfile)
	UsersFile    string // Path to the JSON users file (default: ./users.json)
	DatabaseFile string // Path to the SQLite database file (default: ./playerdash.db)
	PepperFile   string // Path to the password pepper file (default: ./pepper)

	LikeAPIURL      string        // Base URL of the like API
	ProfileAPIURL   string        // Base URL of the profile API
	VortexAPIKey    string        // API key for the like API
	UpstreamTimeout time.Duration // Per-request timeout for upstream calls (default: 10s)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		// The fallback secret keeps local development friction-free; deploys
		// must set SESSION_SECRET.
		SessionSecret: getEnvOrDefault("SESSION_SECRET", "pixel_secret_key_for_development"),
		SessionTTL:    getEnvDurationOrDefault("SESSION_TTL", 24*time.Hour),

		StoreDriver:  getEnvOrDefault("STORE_DRIVER", "jsonfile"),
		UsersFile:    getEnvOrDefault("USERS_FILE", "users.json"),
		DatabaseFile: getEnvOrDefault("DATABASE_FILE", "playerdash.db"),
		PepperFile:   getEnvOrDefault("PEPPER_FILE", "pepper"),

		LikeAPIURL:      getEnvOrDefault("LIKE_API_URL", "https://vortexapi.up.railway.app"),
		ProfileAPIURL:   getEnvOrDefault("PROFILE_API_URL", "https://glob-info.vercel.app"),
		VortexAPIKey:    os.Getenv("VORTEX_API_KEY"),
		UpstreamTimeout: getEnvDurationOrDefault("UPSTREAM_TIMEOUT", 10*time.Second),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Accept plain integer seconds as well
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
