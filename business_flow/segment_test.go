package business_flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSegment(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		segment, err := generateSegment()
		require.NoError(t, err)

		// 4 random bytes in unpadded base64url
		assert.Len(t, segment, 6)
		assert.Regexp(t, `^[A-Za-z0-9_-]+$`, segment)
		assert.LessOrEqual(t, len(segment), MaxSegmentLength)
		seen[segment] = true
	}

	assert.Greater(t, len(seen), 90, "segments should be mostly unique")
}

func TestGeneratedSegmentPassesVanityRules(t *testing.T) {
	for i := 0; i < 20; i++ {
		segment, err := generateSegment()
		require.NoError(t, err)
		assert.NoError(t, ValidateVanity(segment, 4))
	}
}
