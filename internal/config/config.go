package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database    DatabaseConfig
	JWT         JWTConfig
	App         AppConfig
	Geocoder    GeocoderConfig
	Geolocation GeolocationConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	Timezone    string
	CORSOrigins []string
}

// GeocoderConfig configures the reverse geocoding endpoint.
type GeocoderConfig struct {
	Enabled   bool
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// GeolocationConfig bounds how long and how stale a position fix may be.
type GeolocationConfig struct {
	Timeout            time.Duration
	MaximumAge         time.Duration
	EnableHighAccuracy bool
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile reads the given env files, then the environment. Missing files
// are ignored; variables already set in the environment win.
func LoadFile(filenames ...string) (*Config, error) {
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", name, err)
		}
	}

	config := &Config{}
	var err error

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.ParseInt(getEnv("DB_MAX_CONNS", "25"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.ParseInt(getEnv("DB_MIN_CONNS", "5"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "geoattendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Timezone:    getEnv("APP_TIMEZONE", "UTC"),
		CORSOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Geocoder configuration
	geocoderEnabled, err := strconv.ParseBool(getEnv("GEOCODER_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid GEOCODER_ENABLED: %w", err)
	}
	geocoderTimeout, err := time.ParseDuration(getEnv("GEOCODER_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid GEOCODER_TIMEOUT: %w", err)
	}

	config.Geocoder = GeocoderConfig{
		Enabled:   geocoderEnabled,
		BaseURL:   getEnv("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
		UserAgent: getEnv("GEOCODER_USER_AGENT", "HRMS-Attendance-System"),
		Timeout:   geocoderTimeout,
	}

	// Geolocation configuration
	geoTimeout, err := time.ParseDuration(getEnv("GEOLOCATION_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid GEOLOCATION_TIMEOUT: %w", err)
	}
	geoMaxAge, err := time.ParseDuration(getEnv("GEOLOCATION_MAX_AGE", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid GEOLOCATION_MAX_AGE: %w", err)
	}
	highAccuracy, err := strconv.ParseBool(getEnv("GEOLOCATION_HIGH_ACCURACY", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid GEOLOCATION_HIGH_ACCURACY: %w", err)
	}

	config.Geolocation = GeolocationConfig{
		Timeout:            geoTimeout,
		MaximumAge:         geoMaxAge,
		EnableHighAccuracy: highAccuracy,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("APP_TIMEZONE %q is not a valid IANA zone: %w", c.App.Timezone, err)
	}
	if c.Geolocation.Timeout <= 0 {
		return fmt.Errorf("GEOLOCATION_TIMEOUT must be positive")
	}
	if c.Geocoder.Enabled && c.Geocoder.BaseURL == "" {
		return fmt.Errorf("GEOCODER_BASE_URL is required when the geocoder is enabled")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
