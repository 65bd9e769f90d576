package business_flow

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeURL(t *testing.T) {
	decoded, err := DecodeURL("https%3A%2F%2Fexample.com%2Fa%20b")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a b", decoded)

	// Plus signs are literal in URLs, not spaces
	decoded, err = DecodeURL("https://example.com/a+b")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a+b", decoded)

	_, err = DecodeURL("https://example.com/%zz")
	assert.ErrorIs(t, err, ErrInvalidEncoding)

	_, err = DecodeURL("https://example.com/%2")
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestValidateURL(t *testing.T) {
	assert.NoError(t, ValidateURL("https://example.com"))
	assert.NoError(t, ValidateURL("https://example.com/"+strings.Repeat("a", MaxURLLength-20)))

	assert.ErrorIs(t, ValidateURL(strings.Repeat("a", MaxURLLength+1)), ErrURLTooLong)
	assert.ErrorIs(t, ValidateURL("https://example.com/"+strings.Repeat("é", MaxURLLength)), ErrURLTooLong)
	assert.ErrorIs(t, ValidateURL("http://localhost"), ErrLocalhostForbidden)
	assert.ErrorIs(t, ValidateURL("https://localhost:3000/page"), ErrLocalhostForbidden)
	assert.ErrorIs(t, ValidateURL("HTTPS://LocalHost/x"), ErrLocalhostForbidden)

	// Only a localhost host is forbidden, not the word elsewhere
	assert.NoError(t, ValidateURL("https://example.com/localhost"))
}

func TestValidateURLCountsCharactersNotBytes(t *testing.T) {
	// 620 characters but 1220 bytes; the cap is per character
	multibyte := "https://example.com/" + strings.Repeat("é", 600)
	assert.Greater(t, len(multibyte), MaxURLLength)
	assert.NoError(t, ValidateURL(multibyte))
}

func TestValidateVanity(t *testing.T) {
	assert.NoError(t, ValidateVanity("good-link_1", 4))
	assert.NoError(t, ValidateVanity("abcd", 4))

	assert.ErrorIs(t, ValidateVanity("bad link", 4), ErrVanityInvalidCharacter)
	assert.ErrorIs(t, ValidateVanity("bad/link", 4), ErrVanityInvalidCharacter)
	assert.ErrorIs(t, ValidateVanity("", 4), ErrVanityInvalidCharacter)
	assert.ErrorIs(t, ValidateVanity(strings.Repeat("a", 16), 4), ErrVanityTooLong)
	assert.ErrorIs(t, ValidateVanity("abc", 4), ErrVanityTooShort)
	assert.ErrorIs(t, ValidateVanity("add", 0), ErrVanityReserved)
	assert.ErrorIs(t, ValidateVanity("Shorten", 4), ErrVanityReserved)

	// Zero minimum disables the length floor
	assert.NoError(t, ValidateVanity("ab", 0))
}
