// Package business_flow contains the business logic flows for the
// shortening service
package business_flow

import (
	"context"

	"github.com/pabst/shortener/utils"
)

// ClientMetadata carries per-request client information into the flows
type ClientMetadata struct {
	IPAddress string
	UserAgent string
	Referer   string
	RequestID string
}

// NewClientMetadata builds client metadata from a request context
// populated by the HTTP layer
func NewClientMetadata(ctx context.Context) *ClientMetadata {
	meta := &ClientMetadata{}

	if v, ok := ctx.Value(utils.IPAddressKey).(string); ok {
		meta.IPAddress = v
	}
	if v, ok := ctx.Value(utils.UserAgentKey).(string); ok {
		meta.UserAgent = v
	}
	if v, ok := ctx.Value(utils.RefererKey).(string); ok {
		meta.Referer = v
	}
	if v, ok := ctx.Value(utils.RequestIDKey).(string); ok {
		meta.RequestID = v
	}

	return meta
}
