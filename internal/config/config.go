package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	ImageFetchTimeout  time.Duration
	ModelTimeout       time.Duration
	MaxRequestBodySize int64

	// AllowedImageHosts restricts which hosts images may be fetched from.
	// Empty means all hosts are allowed.
	AllowedImageHosts []string

	// Vision model settings
	OpenAIAPIKey string
	Model        string
	MaxRetries   int

	// Pipeline settings
	MinPatternConfidence float64
}

func (c *Config) ServerAddress() string {
	// Trim any whitespace from host and port
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

func LoadFromEnv() (*Config, error) {
	// Set defaults
	cfg := &Config{
		Host:                 getEnvOrDefault("HOST", "0.0.0.0"),
		Port:                 getEnvOrDefault("PORT", "8080"),
		RequestTimeout:       parseDurationOrDefault("REQUEST_TIMEOUT", 60*time.Second),
		ImageFetchTimeout:    parseDurationOrDefault("IMAGE_FETCH_TIMEOUT", 15*time.Second),
		ModelTimeout:         parseDurationOrDefault("MODEL_TIMEOUT", 45*time.Second),
		MaxRequestBodySize:   parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 10*1024*1024), // 10MB
		AllowedImageHosts:    parseHostList(os.Getenv("ALLOWED_IMAGE_HOSTS")),
		OpenAIAPIKey:         os.Getenv("OPENAI_API_KEY"),
		Model:                getEnvOrDefault("VISION_MODEL", "gpt-4o"),
		MaxRetries:           int(parseIntOrDefault("MODEL_MAX_RETRIES", 3)),
		MinPatternConfidence: parseFloatOrDefault("MIN_PATTERN_CONFIDENCE", 0.25),
	}

	// Validate port is numeric and in range
	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.MaxRequestBodySize <= 0 {
		return nil, fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", cfg.MaxRequestBodySize)
	}
	if cfg.RequestTimeout <= 0 || cfg.ImageFetchTimeout <= 0 || cfg.ModelTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be > 0 (got request=%s, fetch=%s, model=%s)",
			cfg.RequestTimeout, cfg.ImageFetchTimeout, cfg.ModelTimeout)
	}
	if cfg.MaxRetries < 0 {
		return nil, fmt.Errorf("MODEL_MAX_RETRIES must be >= 0 (got %d)", cfg.MaxRetries)
	}
	if cfg.MinPatternConfidence < 0 || cfg.MinPatternConfidence > 1 {
		return nil, fmt.Errorf("MIN_PATTERN_CONFIDENCE must be in [0,1] (got %f)", cfg.MinPatternConfidence)
	}
	// A missing API key is deliberately not an error here: the invoker
	// reports it as a configuration failure on first use so the service can
	// still start for health checks.
	return cfg, nil
}

// parseHostList splits a comma-separated host list, trimming whitespace and
// dropping empty entries.
func parseHostList(value string) []string {
	hosts := []string{}
	for _, host := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(host); trimmed != "" {
			hosts = append(hosts, trimmed)
		}
	}
	return hosts
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
