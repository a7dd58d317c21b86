package errors

import (
	"strings"
	"unicode"
)

// ValidateID validates a deck, slide, or block identifier supplied by an
// external caller. IDs end up in file names, cache keys, and database
// filters, so the rules are intentionally conservative:
//   - no empty IDs
//   - no control characters or null bytes
//   - no path separators or traversal sequences
//   - maximum length of 128 characters
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "ID cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "ID too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "ID contains control characters")
		}
	}

	dangerous := []string{"..", "/", "\\", "\x00"}
	for _, pattern := range dangerous {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidInput, "ID contains invalid sequence %q", pattern)
		}
	}

	return nil
}

// ValidateGridSize validates author-requested grid dimensions against the
// configured authoring limit. The engine itself accepts any positive size;
// the limit keeps the editing UI usable.
func ValidateGridSize(rows, columns, maxRows, maxColumns int) error {
	if rows < 1 || columns < 1 {
		return New(ErrCodeInvalidGrid, "grid must be at least 1x1, got %dx%d", rows, columns)
	}
	if rows > maxRows || columns > maxColumns {
		return New(ErrCodeInvalidGrid, "grid %dx%d exceeds authoring limit %dx%d",
			rows, columns, maxRows, maxColumns)
	}
	return nil
}
