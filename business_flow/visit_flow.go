package business_flow

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/pabst/shortener/models"
	"github.com/pabst/shortener/repository"
	"github.com/pabst/shortener/utils"
	"github.com/redis/go-redis/v9"
)

// VisitFlow resolves a segment to its destination and records the click
type VisitFlow interface {
	Visit(ctx context.Context, segment string, metadata *ClientMetadata) (string, error)
}

// VisitFlowImpl implements the visit flow with an optional Redis
// read-through cache in front of the link store
type VisitFlowImpl struct {
	linkRepo  repository.LinkRepository
	clickRepo repository.ClickRepository
	cache     *redis.Client
	cacheTTL  time.Duration
}

// NewVisitFlow creates a new visit flow. cache may be nil, which
// disables caching entirely.
func NewVisitFlow(
	linkRepo repository.LinkRepository,
	clickRepo repository.ClickRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
) VisitFlow {
	return &VisitFlowImpl{
		linkRepo:  linkRepo,
		clickRepo: clickRepo,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

// Visit returns the original URL for a segment. The click row and the
// counter increment are best effort; a failure there never blocks the
// redirect.
func (f *VisitFlowImpl) Visit(ctx context.Context, segment string, metadata *ClientMetadata) (string, error) {
	link, err := f.lookup(ctx, segment)
	if err != nil {
		return "", NewBusinessError("LOOKUP_FAILED", "Failed to look up link", err)
	}
	if link == nil {
		return "", ErrLinkNotFound
	}
	if utils.IsExpiredPtr(link.ExpiresAt) {
		return "", ErrLinkExpired
	}

	f.recordClick(ctx, link, metadata)

	return link.OriginalURL, nil
}

func (f *VisitFlowImpl) lookup(ctx context.Context, segment string) (*models.Link, error) {
	if f.cache != nil {
		if payload, err := f.cache.Get(ctx, cacheKey(segment)).Bytes(); err == nil {
			var link models.Link
			if err := json.Unmarshal(payload, &link); err == nil {
				return &link, nil
			}
		}
	}

	link, err := f.linkRepo.BySegment(ctx, segment)
	if err != nil || link == nil {
		return link, err
	}

	if f.cache != nil {
		f.cacheLink(ctx, link)
	}

	return link, nil
}

// cacheLink stores the link under its segment. The TTL never outlives
// the link's expiry, and expiry is still re-checked on every read.
func (f *VisitFlowImpl) cacheLink(ctx context.Context, link *models.Link) {
	ttl := f.cacheTTL
	if link.ExpiresAt != nil {
		untilExpiry := time.Until(*link.ExpiresAt)
		if untilExpiry <= 0 {
			return
		}
		if untilExpiry < ttl {
			ttl = untilExpiry
		}
	}

	payload, err := json.Marshal(link)
	if err != nil {
		return
	}
	if err := f.cache.Set(ctx, cacheKey(link.Segment), payload, ttl).Err(); err != nil {
		log.Printf("failed to cache link segment=%s: %v", link.Segment, err)
	}
}

func (f *VisitFlowImpl) recordClick(ctx context.Context, link *models.Link, metadata *ClientMetadata) {
	click := &models.Click{
		LinkID:    link.ID,
		IP:        metadata.IPAddress,
		Referer:   metadata.Referer,
		ClickedAt: utils.UTCNow(),
	}
	if err := f.clickRepo.Save(ctx, click); err != nil {
		log.Printf("failed to record click for link %d: %v", link.ID, err)
	} else {
		clicksRecorded.Inc()
	}
	if err := f.linkRepo.IncrementClickCount(ctx, link.ID); err != nil {
		log.Printf("failed to increment click count for link %d: %v", link.ID, err)
	}
}

func cacheKey(segment string) string {
	return "link:segment:" + segment
}
