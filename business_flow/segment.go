package business_flow

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const (
	segmentEntropyBytes = 4

	// maxGenerateAttempts bounds fresh draws after unique collisions
	maxGenerateAttempts = 3
)

// generateSegment draws a short random url-safe segment
func generateSegment() (string, error) {
	buf := make([]byte, segmentEntropyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate segment: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
