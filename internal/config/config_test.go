package config

import (
	"reflect"
	"testing"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"HOST", "PORT", "ALLOWED_IMAGE_HOSTS", "VISION_MODEL",
		"MODEL_MAX_RETRIES", "MIN_PATTERN_CONFIDENCE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("Expected defaults to load, got %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %q", cfg.Port)
	}
	if cfg.Model != "gpt-4o" {
		t.Errorf("Expected default model gpt-4o, got %q", cfg.Model)
	}
	if len(cfg.AllowedImageHosts) != 0 {
		t.Errorf("Expected no host restrictions by default, got %v", cfg.AllowedImageHosts)
	}
	if cfg.MinPatternConfidence != 0.25 {
		t.Errorf("Expected default confidence gate 0.25, got %f", cfg.MinPatternConfidence)
	}
}

func TestLoadFromEnv_AllowedImageHosts(t *testing.T) {
	t.Setenv("ALLOWED_IMAGE_HOSTS", " cdn.example.com, photos.example.com ,,")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	expected := []string{"cdn.example.com", "photos.example.com"}
	if !reflect.DeepEqual(cfg.AllowedImageHosts, expected) {
		t.Errorf("Expected trimmed host list %v, got %v", expected, cfg.AllowedImageHosts)
	}
}

func TestParseHostList(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected []string
	}{
		{"empty", "", []string{}},
		{"single", "example.com", []string{"example.com"}},
		{"whitespace and blanks", " a.com , , b.com ", []string{"a.com", "b.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseHostList(tt.value); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("parseHostList(%q) = %v, want %v", tt.value, got, tt.expected)
			}
		})
	}
}

func TestLoadFromEnv_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	if _, err := LoadFromEnv(); err == nil {
		t.Error("Expected error for non-numeric port")
	}
}
