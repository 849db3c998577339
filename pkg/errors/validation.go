package errors

import (
	"strings"
	"unicode"
)

// ValidateNodeID validates a node identifier from untrusted input.
// Identifiers end up in cache keys, DOT output, and file names, so the rules
// are intentionally conservative:
//   - No empty ids
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "node id too long (max 256 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node id contains control characters")
		}
	}
	if strings.Contains(id, "\x00") {
		return New(ErrCodeInvalidInput, "node id contains null byte")
	}
	return nil
}

// ValidateCanvas validates canvas dimensions for a layout request.
func ValidateCanvas(width, height float64) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidCanvas, "canvas dimensions must be positive, got %gx%g", width, height)
	}
	return nil
}
