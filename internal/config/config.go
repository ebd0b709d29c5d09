package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Env                string
	Port               string
	CORSAllowedOrigins []string

	// Gemini
	GeminiAPIKey      string
	GeminiModel       string
	GeminiEndpoint    string
	GeminiTimeout     time.Duration
	GeminiMaxAttempts int
}

const (
	defaultGeminiModel   = "gemini-1.5-flash"
	defaultGeminiTimeout = 15 * time.Second
)

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:                getEnv("ENV", "development"),
		Port:               getEnv("PORT", "8000"),

		GeminiAPIKey:   strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:    getEnv("GEMINI_MODEL", defaultGeminiModel),
		GeminiEndpoint: strings.TrimSpace(os.Getenv("GEMINI_ENDPOINT")),
	}

	origins, err := parseOrigins(getEnv("CORS_ALLOWED_ORIGINS", "*"))
	if err != nil {
		return nil, err
	}
	config.CORSAllowedOrigins = origins

	timeout, err := parseTimeout(os.Getenv("GEMINI_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	config.GeminiTimeout = timeout

	attempts, err := parseAttempts(os.Getenv("GEMINI_MAX_ATTEMPTS"))
	if err != nil {
		return nil, err
	}
	config.GeminiMaxAttempts = attempts

	if port, err := strconv.Atoi(config.Port); err != nil || port < 1 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT %q: must be a number between 1 and 65535", config.Port)
	}

	return config, nil
}

// InsightsEnabled reports whether an API credential for the model is configured.
func (c *Config) InsightsEnabled() bool {
	return c.GeminiAPIKey != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return defaultGeminiTimeout, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid GEMINI_TIMEOUT %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("GEMINI_TIMEOUT must be positive, got %v", d)
	}
	return d, nil
}

func parseAttempts(s string) (int, error) {
	if s == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid GEMINI_MAX_ATTEMPTS %q: %w", s, err)
	}
	if n < 1 || n > 5 {
		return 0, fmt.Errorf("GEMINI_MAX_ATTEMPTS must be between 1 and 5, got %d", n)
	}
	return n, nil
}

// parseOrigins accepts "*" or a comma separated list of http(s) origins.
func parseOrigins(s string) ([]string, error) {
	origins := splitList(s)
	if len(origins) == 0 {
		return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS must list at least one origin")
	}
	for _, o := range origins {
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return nil, fmt.Errorf("invalid CORS origin %q: must start with http:// or https://", o)
		}
	}
	return origins, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
