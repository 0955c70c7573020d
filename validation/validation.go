package validation

import (
	"fmt"
	"net/url"
	"strings"
)

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Message: "URL is required"}
	}

	rawURL = strings.TrimSpace(rawURL)

	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return &ValidationError{Message: "invalid URL format"}
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Message: "URL must start with http or https"}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Message: "URL must have a host"}
	}

	return nil
}

func ValidateModes(modes []string) error {
	if len(modes) == 0 {
		return &ValidationError{Message: "at least one summary mode is required"}
	}
	seen := make(map[string]bool, len(modes))
	for _, m := range modes {
		if seen[m] {
			return &ValidationError{Message: fmt.Sprintf("duplicate mode: %s", m)}
		}
		seen[m] = true
	}
	return nil
}
