package utils

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"
)

// String length limits
const (
	MaxIDLength          = 128
	MaxProfileNameLength = 64
	MaxTitleLength       = 256
	MaxPathLength        = 4096
)

// Regular expressions for validation
var (
	// SafeIDPattern allows alphanumeric, hyphens, underscores (covers both
	// UUID session ids and prefixed ULID request ids)
	SafeIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	// ProfileNamePattern allows lowercase alphanumeric, hyphens, underscores
	ProfileNamePattern = regexp.MustCompile(`^[a-z0-9_-]+$`)
)

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if value == "" && !required {
		return nil // Optional field, empty is OK
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	// Check for null bytes (security issue)
	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}

	return nil
}

// ValidateID validates a session or tab ID field
func ValidateID(id, fieldName string, required bool) error {
	if err := ValidateString(id, fieldName, 1, MaxIDLength, required); err != nil {
		return err
	}

	if id != "" && !SafeIDPattern.MatchString(id) {
		return fmt.Errorf("%s contains invalid characters (only alphanumeric, hyphens, and underscores allowed)", fieldName)
	}

	return nil
}

// ValidateProfileName validates a shell profile name
func ValidateProfileName(name string, required bool) error {
	if err := ValidateString(name, "profile name", 1, MaxProfileNameLength, required); err != nil {
		return err
	}

	if name != "" && !ProfileNamePattern.MatchString(name) {
		return fmt.Errorf("profile name must contain only lowercase letters, numbers, hyphens, and underscores")
	}

	return nil
}

// ValidateDirectory validates that a path names an existing directory
func ValidateDirectory(path, fieldName string, required bool) error {
	if err := ValidateString(path, fieldName, 1, MaxPathLength, required); err != nil {
		return err
	}
	if path == "" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s does not exist: %s", fieldName, path)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory: %s", fieldName, path)
	}

	return nil
}
