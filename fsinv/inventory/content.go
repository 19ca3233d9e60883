package inventory

import (
	"fmt"
	"os"
	"unicode/utf8"
)

// ContentUtils loads full file contents as UTF-8 text. No size limit is
// imposed at this layer: very large or binary files are read in full, a
// known scalability constraint rather than silent truncation.
type ContentUtils struct{}

// NewContentUtils creates a new ContentUtils instance
func NewContentUtils() *ContentUtils {
	return &ContentUtils{}
}

// ReadText reads the file at path and returns its content as one string.
// Byte sequences that are not valid UTF-8 yield a decode failure.
func (cu *ContentUtils) ReadText(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", newFieldError(path, fmt.Errorf("failed to read file %s: %w", path, err))
	}

	return decodeText(path, raw)
}

// decodeText validates raw as UTF-8 and returns it as a string.
func decodeText(path string, raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", newFieldError(path, fmt.Errorf("%w: %s", ErrDecode, path))
	}
	return string(raw), nil
}
