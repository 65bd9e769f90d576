package business_flow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pabst/shortener/models"
	"github.com/pabst/shortener/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisitRedirectsAndRecordsClick(t *testing.T) {
	repo := newFakeLinkRepo()
	clicks := &fakeClickRepo{}
	flow := NewVisitFlow(repo, clicks, nil, time.Minute)

	link := repo.seed(&models.Link{
		Segment:     "abc123",
		OriginalURL: "https://example.com/dest",
	})

	target, err := flow.Visit(context.Background(), "abc123", testMetadata())
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/dest", target)

	require.Len(t, clicks.clicks, 1)
	assert.Equal(t, link.ID, clicks.clicks[0].LinkID)
	assert.Equal(t, "203.0.113.7", clicks.clicks[0].IP)
	assert.Equal(t, "https://referrer.example", clicks.clicks[0].Referer)
	assert.Equal(t, 1, repo.increments[link.ID])
}

func TestVisitUnknownSegment(t *testing.T) {
	repo := newFakeLinkRepo()
	clicks := &fakeClickRepo{}
	flow := NewVisitFlow(repo, clicks, nil, time.Minute)

	_, err := flow.Visit(context.Background(), "nope", testMetadata())
	assert.ErrorIs(t, err, ErrLinkNotFound)
	assert.True(t, IsLinkNotFound(err))
	assert.Empty(t, clicks.clicks)
}

func TestVisitExpiredLink(t *testing.T) {
	repo := newFakeLinkRepo()
	clicks := &fakeClickRepo{}
	flow := NewVisitFlow(repo, clicks, nil, time.Minute)

	link := repo.seed(&models.Link{
		Segment:     "old",
		OriginalURL: "https://example.com/old",
		ExpiresAt:   utils.ToPtr(utils.UTCNowAdd(-time.Hour)),
	})

	_, err := flow.Visit(context.Background(), "old", testMetadata())
	assert.ErrorIs(t, err, ErrLinkExpired)
	assert.True(t, IsLinkExpired(err))
	assert.Empty(t, clicks.clicks, "expired visits are not counted")
	assert.Zero(t, repo.increments[link.ID])
}

func TestVisitFutureExpiryStillResolves(t *testing.T) {
	repo := newFakeLinkRepo()
	flow := NewVisitFlow(repo, &fakeClickRepo{}, nil, time.Minute)

	repo.seed(&models.Link{
		Segment:     "fresh",
		OriginalURL: "https://example.com/fresh",
		ExpiresAt:   utils.ToPtr(utils.UTCNowAdd(time.Hour)),
	})

	target, err := flow.Visit(context.Background(), "fresh", testMetadata())
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/fresh", target)
}

func TestVisitClickFailureDoesNotBlockRedirect(t *testing.T) {
	repo := newFakeLinkRepo()
	clicks := &fakeClickRepo{saveErr: errors.New("disk full")}
	flow := NewVisitFlow(repo, clicks, nil, time.Minute)

	link := repo.seed(&models.Link{
		Segment:     "abc123",
		OriginalURL: "https://example.com/dest",
	})

	target, err := flow.Visit(context.Background(), "abc123", testMetadata())
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/dest", target)
	assert.Equal(t, 1, repo.increments[link.ID], "counter still incremented when click row fails")
}
