// Package strongs normalizes Strong's Concordance identifiers, the
// G-prefixed (Greek) and H-prefixed (Hebrew) numbers indexing lexicon
// entries. "g 0025" normalizes to "G25"; an all-zero digit group keeps
// a single zero, so "G000" becomes "G0".
package strongs

import (
	"regexp"
	"strings"

	"github.com/FocuswithJustin/Koine/core/errors"
)

var strongsPattern = regexp.MustCompile(`^\s*([GHgh])\s*([0-9]+)\s*$`)

// Normalize canonicalizes a Strong's number: the letter is uppercased
// and leading zeros are stripped from the digit run. Any input not of
// the shape letter-then-digits returns errors.ErrInvalidStrongs.
func Normalize(input string) (string, error) {
	m := strongsPattern.FindStringSubmatch(input)
	if m == nil {
		return "", errors.ErrInvalidStrongs
	}

	digits := strings.TrimLeft(m[2], "0")
	if digits == "" {
		digits = "0"
	}
	return strings.ToUpper(m[1]) + digits, nil
}

// TryNormalize is the non-failing variant of Normalize. The boolean
// reports whether the input was a valid Strong's number.
func TryNormalize(input string) (string, bool) {
	out, err := Normalize(input)
	return out, err == nil
}

// IsValid reports whether Normalize would succeed on the input.
func IsValid(input string) bool {
	_, err := Normalize(input)
	return err == nil
}
