package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxVertexIDLength bounds vertex IDs accepted from users.
const maxVertexIDLength = 256

// ValidateVertexID validates a vertex ID given on the command line or in an
// API request.
//
// Rules:
//   - No empty IDs
//   - No control characters or null bytes
//   - Maximum length of 256 bytes
func ValidateVertexID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "vertex ID cannot be empty")
	}
	if len(id) > maxVertexIDLength {
		return New(ErrCodeInvalidInput, "vertex ID too long (max %d characters)", maxVertexIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "vertex ID contains invalid control characters")
		}
	}
	return nil
}

// ValidateSpacing checks that a spacing value is finite and not negative.
func ValidateSpacing(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be a finite number", name)
	}
	if v < 0 {
		return New(ErrCodeInvalidInput, "%s must not be negative, got %v", name, v)
	}
	return nil
}

// ValidateCoordinate checks that a coordinate is finite.
func ValidateCoordinate(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be a finite number", name)
	}
	return nil
}

// ValidatePath validates an output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	if strings.ContainsFunc(path, unicode.IsControl) {
		return New(ErrCodeInvalidPath, "path contains invalid characters")
	}
	return nil
}
