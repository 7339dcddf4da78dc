package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePath validates an output path supplied over the API or CLI.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// hexColorRegex matches #RGB and #RRGGBB colour literals.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor validates a hex colour literal such as "#64B5F6".
// The empty string is accepted and means "use the palette default".
func ValidateColor(c string) error {
	if c == "" {
		return nil
	}
	if !hexColorRegex.MatchString(c) {
		return New(ErrCodeInvalidColor, "invalid colour %q (want #RGB or #RRGGBB)", c)
	}
	return nil
}

// ValidateTitle validates a task title: non-empty after trimming, no control characters.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return New(ErrCodeInvalidTask, "title cannot be empty")
	}
	for _, r := range title {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTask, "title contains invalid control characters")
		}
	}
	return nil
}
