package validation

import (
	"testing"

	apperrors "go-pattern-analyzer/internal/errors"
)

func TestValidateImageURL_ValidURLs(t *testing.T) {
	validator := NewSourceValidator()

	validURLs := []string{
		"http://example.com/photo.jpg",
		"https://example.com/photo.png",
		"https://cdn.example.com/path/to/photo.jpg",
		"http://192.168.1.1/photo.jpg",
	}

	for _, url := range validURLs {
		if err := validator.ValidateImageURL(url); err != nil {
			t.Errorf("Expected valid URL %s to pass validation, got error: %v", url, err)
		}
	}
}

func TestValidateImageURL_EmptyURL(t *testing.T) {
	validator := NewSourceValidator()

	for _, url := range []string{"", "   ", "\t\n"} {
		err := validator.ValidateImageURL(url)
		if err == nil {
			t.Errorf("Expected empty URL '%s' to fail validation", url)
			continue
		}
		if appErr, ok := err.(*apperrors.AppError); ok {
			if appErr.Message != "URL cannot be empty" {
				t.Errorf("Expected 'URL cannot be empty' error, got: %s", appErr.Message)
			}
		} else {
			t.Errorf("Expected AppError, got: %T", err)
		}
	}
}

func TestValidateImageURL_InvalidScheme(t *testing.T) {
	validator := NewSourceValidator()

	invalidSchemeURLs := []string{
		"ftp://example.com/photo.jpg",
		"file://local/path/photo.jpg",
		"data:image/png;base64,iVBORw0KGgo=",
	}

	for _, url := range invalidSchemeURLs {
		err := validator.ValidateImageURL(url)
		if err == nil {
			t.Errorf("Expected URL with invalid scheme '%s' to fail validation", url)
			continue
		}
		if appErr, ok := err.(*apperrors.AppError); ok {
			if appErr.Message != "URL scheme not allowed" {
				t.Errorf("Expected 'URL scheme not allowed' error, got: %s", appErr.Message)
			}
		}
	}
}

func TestValidateImageURL_NoHost(t *testing.T) {
	validator := NewSourceValidator()

	for _, url := range []string{"http://", "https://", "http:///path"} {
		err := validator.ValidateImageURL(url)
		if err == nil {
			t.Errorf("Expected URL without host '%s' to fail validation", url)
		}
	}
}

func TestValidateImageURL_RestrictedHosts(t *testing.T) {
	validator := NewSourceValidatorWithOptions(
		[]string{"http", "https"},
		[]string{"example.com", "trusted.com"},
	)

	for _, url := range []string{"http://example.com/a.jpg", "https://trusted.com/b.png"} {
		if err := validator.ValidateImageURL(url); err != nil {
			t.Errorf("Expected allowed host URL '%s' to pass validation, got error: %v", url, err)
		}
	}

	for _, url := range []string{"http://malicious.com/a.jpg", "https://untrusted.com/b.png"} {
		err := validator.ValidateImageURL(url)
		if err == nil {
			t.Errorf("Expected disallowed host URL '%s' to fail validation", url)
			continue
		}
		if appErr, ok := err.(*apperrors.AppError); ok {
			if appErr.Message != "URL host not allowed" {
				t.Errorf("Expected 'URL host not allowed' error, got: %s", appErr.Message)
			}
		}
	}
}
