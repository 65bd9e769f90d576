package business_flow

import (
	"context"
	"strings"

	"github.com/pabst/shortener/models"
	"github.com/pabst/shortener/repository"
)

// LookupFlow answers "what is behind this short link" queries
type LookupFlow interface {
	WhatIs(ctx context.Context, segmentOrURL string) (*models.Link, error)
}

// LookupFlowImpl implements the lookup flow
type LookupFlowImpl struct {
	linkRepo repository.LinkRepository
	rootURL  string
}

// NewLookupFlow creates a new lookup flow
func NewLookupFlow(linkRepo repository.LinkRepository, rootURL string) LookupFlow {
	return &LookupFlowImpl{
		linkRepo: linkRepo,
		rootURL:  rootURL,
	}
}

// WhatIs resolves a segment to its link. A full short URL is accepted
// too; the service's own root URL prefix is stripped before lookup.
func (f *LookupFlowImpl) WhatIs(ctx context.Context, segmentOrURL string) (*models.Link, error) {
	segment := strings.Replace(segmentOrURL, f.rootURL, "", 1)

	link, err := f.linkRepo.BySegment(ctx, segment)
	if err != nil {
		return nil, NewBusinessError("LOOKUP_FAILED", "Failed to look up link", err)
	}
	if link == nil {
		return nil, ErrLinkNotFound
	}

	return link, nil
}
