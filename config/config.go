package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	API     APIConfig
	Geo     GeoConfig
	Session SessionConfig
	Log     LogConfig
}

type APIConfig struct {
	BaseURL     string // backend REST base, e.g. http://localhost:8000/api/v1
	AuthBaseURL string // auth endpoints live under /api/users
	Timeout     time.Duration
	PageLimit   int // default page size for list/search calls
}

type GeoConfig struct {
	ReverseGeocodeURL string // Nominatim-compatible reverse endpoint
	LocateTimeout     time.Duration
	PositionMaxAge    time.Duration
}

type SessionConfig struct {
	FilePath string // where tokens and the user profile are persisted
}

type LogConfig struct {
	Level  string
	Format string // json, console
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		API: APIConfig{
			BaseURL:     getEnv("API_BASE_URL", "http://localhost:8000/api/v1"),
			AuthBaseURL: getEnv("AUTH_BASE_URL", "http://localhost:8000/api/users"),
			Timeout:     parseDuration(getEnv("API_TIMEOUT", "30s"), 30*time.Second),
			PageLimit:   parseInt(getEnv("API_PAGE_LIMIT", "20"), 20),
		},
		Geo: GeoConfig{
			ReverseGeocodeURL: getEnv("REVERSE_GEOCODE_URL", "https://nominatim.openstreetmap.org/reverse"),
			LocateTimeout:     parseDuration(getEnv("GEO_LOCATE_TIMEOUT", "10s"), 10*time.Second),
			PositionMaxAge:    parseDuration(getEnv("GEO_POSITION_MAX_AGE", "5m"), 5*time.Minute),
		},
		Session: SessionConfig{
			FilePath: getEnv("SESSION_FILE", defaultSessionPath()),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}

	return config, nil
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".storeboard-session.json"
	}
	return home + "/.storeboard-session.json"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
