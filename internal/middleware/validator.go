package middleware

import (
	"fmt"
	"regexp"
	"strings"
)

var modelIDPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._:/-]{0,127}$`)

// ValidateModelID checks the upstream model identifier format, e.g. "openai/gpt-oss-20b".
func ValidateModelID(model string) error {
	if model == "" {
		return fmt.Errorf("model ID cannot be empty")
	}
	if !modelIDPattern.MatchString(model) {
		return fmt.Errorf("invalid model ID format: %q", model)
	}
	if strings.Contains(model, "..") {
		return fmt.Errorf("invalid model ID format: %q", model)
	}
	return nil
}

// SanitizeString removes NUL bytes. Everything else, including surrounding
// whitespace and other control characters, reaches the model unchanged.
func SanitizeString(input string) string {
	return strings.ReplaceAll(input, "\x00", "")
}
