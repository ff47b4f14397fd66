package fileformat

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const maxEntryNameBytes = 0xffff

// NormalizeEntryName converts an entry name to the form stored in the
// archive: backslashes become forward slashes and one leading slash is
// dropped. The result never starts with a slash, so normalizing a normalized
// name returns it unchanged.
func NormalizeEntryName(name string) (string, error) {
	normalized := strings.ReplaceAll(name, `\`, "/")
	normalized = strings.TrimPrefix(normalized, "/")

	switch {
	case normalized == "":
		return "", fmt.Errorf("%w: %q is empty", ErrInvalidName, name)
	case strings.HasPrefix(normalized, "/"):
		return "", fmt.Errorf("%w: %q starts with more than one slash", ErrInvalidName, name)
	case strings.ContainsRune(normalized, 0):
		return "", fmt.Errorf("%w: %q contains NUL", ErrInvalidName, name)
	case strings.ContainsAny(normalized, "\r\n"):
		return "", fmt.Errorf("%w: %q contains a line break", ErrInvalidName, name)
	case !utf8.ValidString(normalized):
		return "", fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidName, name)
	case len(normalized) > maxEntryNameBytes:
		return "", fmt.Errorf("%w: name is %d bytes long", ErrInvalidName, len(normalized))
	}
	return normalized, nil
}
