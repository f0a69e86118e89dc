package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Redis   RedisConfig
	UI      UIConfig
	App     AppConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	FormRateLimit  float64
	FormRateBurst  int
}

type BackendConfig struct {
	URL           string
	Timeout       time.Duration
	ProbeSchedule string
}

// RedisConfig selects the flash store. An empty URL keeps notifications in memory.
type RedisConfig struct {
	URL      string
	FlashTTL time.Duration
}

type UIConfig struct {
	ToastDuration       time.Duration
	CreateRedirectDelay time.Duration
	EditRedirectDelay   time.Duration
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "3000"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),
			FormRateLimit:  getEnvAsFloat("FORM_RATE_LIMIT", 5),
			FormRateBurst:  getEnvAsInt("FORM_RATE_BURST", 10),
		},
		Backend: BackendConfig{
			URL:           strings.TrimRight(getEnv("BACKEND_URL", "http://localhost:8080"), "/"),
			Timeout:       getEnvAsDuration("BACKEND_TIMEOUT", 10*time.Second),
			ProbeSchedule: getEnv("BACKEND_PROBE_SCHEDULE", "@every 30s"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			FlashTTL: getEnvAsDuration("FLASH_TTL", 5*time.Minute),
		},
		UI: UIConfig{
			ToastDuration:       getEnvAsDuration("TOAST_DURATION", 3*time.Second),
			CreateRedirectDelay: getEnvAsDuration("CREATE_REDIRECT_DELAY", time.Second),
			EditRedirectDelay:   getEnvAsDuration("EDIT_REDIRECT_DELAY", 1500*time.Millisecond),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	u, err := url.Parse(c.Backend.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("BACKEND_URL must be an absolute http(s) URL, got %q", c.Backend.URL)
	}

	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("BACKEND_TIMEOUT must be positive")
	}

	if c.Server.FormRateLimit <= 0 || c.Server.FormRateBurst <= 0 {
		return fmt.Errorf("FORM_RATE_LIMIT and FORM_RATE_BURST must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
