package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageFile  = "file"
	StorageRedis = "redis"

	defaultPollInterval = 15 * time.Second
	defaultRequestLimit = 100
)

type Config struct {
	APIBase       string
	StorageDriver string
	StoragePath   string
	RedisAddress  string
	RedisPassword string
	RedisPrefix   string
	PollInterval  time.Duration
	RequestLimit  int
	HTTPTimeout   time.Duration
	StatusAddr    string
	StatusCORS    []string
	StatusRPM     int
	LogLevel      string
	Version       string
	Dispatch      DispatchConfig
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	driver := strings.ToLower(os.Getenv("CARS_STORAGE"))
	if driver == "" {
		driver = StorageFile
	}

	storagePath := os.Getenv("CARS_STORAGE_PATH")
	if storagePath == "" {
		storagePath = defaultStoragePath()
	}

	version := os.Getenv("APP_VERSION")
	if version == "" {
		version = "unknown"
	}

	return &Config{
		APIBase:       APIBase(),
		StorageDriver: driver,
		StoragePath:   storagePath,
		RedisAddress:  readString("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisPrefix:   readString("REDIS_KEY_PREFIX", "cars-front:"),
		PollInterval:  readDuration("CARS_POLL_INTERVAL", defaultPollInterval),
		RequestLimit:  readInt("CARS_REQUEST_LIMIT", defaultRequestLimit),
		HTTPTimeout:   readDuration("CARS_HTTP_TIMEOUT", 20*time.Second),
		StatusAddr:    os.Getenv("STATUS_ADDR"),
		StatusCORS:    readList("STATUS_CORS_ORIGINS", []string{"*"}),
		StatusRPM:     readInt("STATUS_RATE_LIMIT", 120),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		Version:       version,
		Dispatch:      LoadDispatchConfig(),
	}
}

// APIBase returns the backend origin without a trailing slash. An empty
// value means same-origin relative paths.
func APIBase() string {
	base := strings.TrimSpace(os.Getenv("CARS_API_BASE"))
	if base == "" {
		base = strings.TrimSpace(os.Getenv("VITE_API_BASE"))
	}
	return strings.TrimSuffix(base, "/")
}

var ErrMissingAPIBase = errors.New("CARS_API_BASE (or VITE_API_BASE) environment variable is required")

// Validate checks the values the console cannot run without.
func (c *Config) Validate() error {
	if c.APIBase == "" {
		return ErrMissingAPIBase
	}
	u, err := url.Parse(c.APIBase)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("CARS_API_BASE %q must be an absolute http(s) URL", c.APIBase)
	}
	return nil
}

func defaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "cars-front", "storage.json")
}

func readString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func readDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func readList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
