package business_flow

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxURLLength is the longest original URL accepted, after decoding
	MaxURLLength = 1000

	// MaxSegmentLength bounds both generated and vanity segments
	MaxSegmentLength = 15
)

// ReservedSegments are route names a vanity segment may not shadow
var ReservedSegments = map[string]struct{}{
	"add":     {},
	"whatis":  {},
	"stats":   {},
	"shorten": {},
}

var (
	segmentRe   = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	localhostRe = regexp.MustCompile(`(?i)^https?://localhost`)
)

// DecodeURL percent-decodes a submitted URL. Malformed escapes are
// rejected rather than passed through.
func DecodeURL(raw string) (string, error) {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return "", ErrInvalidEncoding
	}
	return decoded, nil
}

// ValidateURL checks a decoded URL against the submission rules.
// The length cap counts characters, not bytes, so multibyte URLs are
// not penalized.
func ValidateURL(decoded string) error {
	if utf8.RuneCountInString(decoded) > MaxURLLength {
		return ErrURLTooLong
	}
	if localhostRe.MatchString(decoded) {
		return ErrLocalhostForbidden
	}
	return nil
}

// ValidateVanity checks a requested vanity segment. minLength zero
// disables the minimum-length rule.
func ValidateVanity(vanity string, minLength int) error {
	if !segmentRe.MatchString(vanity) {
		return ErrVanityInvalidCharacter
	}
	if len(vanity) > MaxSegmentLength {
		return ErrVanityTooLong
	}
	if minLength > 0 && len(vanity) < minLength {
		return ErrVanityTooShort
	}
	if _, reserved := ReservedSegments[strings.ToLower(vanity)]; reserved {
		return ErrVanityReserved
	}
	return nil
}
