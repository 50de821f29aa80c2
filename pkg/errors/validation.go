package errors

import (
	"strings"
	"unicode"
)

// maxIDLength bounds node, edge, mind map and session identifiers.
const maxIDLength = 256

// ValidateID validates an identifier supplied by an external collaborator
// (node ID, edge ID, mind map ID, user ID).
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or null bytes
//   - No path separators (IDs become file names in the file stores)
//   - Maximum length of 256 characters
func ValidateID(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "%s cannot be empty", kind)
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidInput, "%s too long (max %d characters)", kind, maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s contains invalid control characters", kind)
		}
	}

	if strings.ContainsAny(id, "/\\") || strings.Contains(id, "..") {
		return New(ErrCodeInvalidInput, "%s contains invalid characters: %q", kind, id)
	}

	return nil
}

// ValidateTitle validates a mind map title.
// Titles are free text but must be non-blank, single-line and reasonably short.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return New(ErrCodeInvalidInput, "title cannot be empty")
	}

	const maxTitleLength = 500
	if len(title) > maxTitleLength {
		return New(ErrCodeInvalidInput, "title too long (max %d characters)", maxTitleLength)
	}

	if strings.ContainsAny(title, "\r\n\x00") {
		return New(ErrCodeInvalidInput, "title must be a single line")
	}

	return nil
}

// ValidateElapsed validates a game duration in seconds.
func ValidateElapsed(seconds int) error {
	if seconds < 0 {
		return New(ErrCodeInvalidInput, "time_elapsed_seconds must be >= 0, got %d", seconds)
	}
	return nil
}
