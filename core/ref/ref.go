// Package ref normalizes free-form verse citations into the canonical
// Book.Chapter.Verse form used as the lookup key into the verse dataset.
//
// Accepted inputs are whitespace-tolerant and case-insensitive:
// "1 Corinthians 13:4", "I Cor 13.4", and "1cor-13-4" all normalize to
// "1Cor.13.4". The canonical form normalizes to itself. Only the 27 New
// Testament books are recognized.
package ref

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/FocuswithJustin/Koine/core/errors"
)

// refPattern captures an optional ordinal prefix (digit, Roman numeral,
// or spelled-out First/Second/Third), the book word, the chapter, and
// the verse. Chapter and verse may be separated from their neighbors by
// ".", ":", "-", or whitespace. RE2 has no backtracking, so the pattern
// is linear in the input length.
var refPattern = regexp.MustCompile(
	`(?i)^\s*(?:(first|second|third|i{1,3}|\d)\s*\.?\s*)?([a-z]+)\s*[.:\-\s]\s*(\d+)\s*[.:\-\s]\s*(\d+)\s*$`)

// Normalize converts a free-form verse citation to canonical
// Book.Chapter.Verse form. It returns errors.ErrInvalidReference when
// the input does not match the citation shape or names an unknown book.
func Normalize(input string) (string, error) {
	m := refPattern.FindStringSubmatch(input)
	if m == nil {
		return "", errors.ErrInvalidReference
	}

	key := strings.ToLower(m[2])
	if prefix := strings.ToLower(m[1]); prefix != "" {
		digit, ok := ordinalDigits[prefix]
		if !ok {
			return "", errors.ErrInvalidReference
		}
		key = digit + key
	}

	book, ok := bookAliases[key]
	if !ok {
		return "", errors.ErrInvalidReference
	}

	return fmt.Sprintf("%s.%s.%s", book, stripZeros(m[3]), stripZeros(m[4])), nil
}

// TryNormalize is the non-failing variant of Normalize. The boolean
// reports whether the input was a valid reference.
func TryNormalize(input string) (string, bool) {
	out, err := Normalize(input)
	return out, err == nil
}

// IsValid reports whether Normalize would succeed on the input.
func IsValid(input string) bool {
	_, err := Normalize(input)
	return err == nil
}

// stripZeros removes leading zeros from a digit group. An all-zero
// group reduces to the literal "0", never to an empty string.
func stripZeros(digits string) string {
	trimmed := strings.TrimLeft(digits, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}
