package errors

import (
	"strings"
	"unicode"
)

// ValidateStyle validates a render style before it becomes a URL path segment.
//
// Validation rules:
//   - Style cannot be empty
//   - Maximum length of 64 characters
//   - No control characters
//   - No path separators or traversal sequences
func ValidateStyle(style string) error {
	if style == "" {
		return New(ErrCodeInvalidStyle, "style cannot be empty")
	}

	if len(style) > 64 {
		return New(ErrCodeInvalidStyle, "style too long (max 64 characters)")
	}

	for _, r := range style {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidStyle, "style contains invalid characters")
		}
	}

	for _, pattern := range []string{"/", "\\", "..", "?", "#"} {
		if strings.Contains(style, pattern) {
			return New(ErrCodeInvalidStyle, "style contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// ValidateLayerID validates a layer identifier received from outside the
// document (CLI flags, API requests).
func ValidateLayerID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "layer id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "layer id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "layer id contains invalid control characters")
		}
	}

	return nil
}
