package business_flow

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/pabst/shortener/app/services"
	"github.com/pabst/shortener/models"
	"github.com/pabst/shortener/repository"
	"github.com/pabst/shortener/utils"
)

// ShortenResult is the outcome of a shorten request
type ShortenResult struct {
	Link          *models.Link
	AlreadyExists bool
}

// ShortenFlow turns a submitted URL into a stored short link
type ShortenFlow interface {
	Shorten(ctx context.Context, rawURL, vanity string, daysActive int, metadata *ClientMetadata) (*ShortenResult, error)
}

// ShortenFlowImpl implements the shorten flow
type ShortenFlowImpl struct {
	linkRepo        repository.LinkRepository
	prober          services.LivenessProber
	minVanityLength int
	urlsPerHour     int64
}

// NewShortenFlow creates a new shorten flow
func NewShortenFlow(
	linkRepo repository.LinkRepository,
	prober services.LivenessProber,
	minVanityLength int,
	urlsPerHour int64,
) ShortenFlow {
	return &ShortenFlowImpl{
		linkRepo:        linkRepo,
		prober:          prober,
		minVanityLength: minVanityLength,
		urlsPerHour:     urlsPerHour,
	}
}

// Shorten validates the submission, verifies the target answers, and
// stores the link. Resubmitting an already-shortened URL returns the
// existing link instead of an error.
func (f *ShortenFlowImpl) Shorten(ctx context.Context, rawURL, vanity string, daysActive int, metadata *ClientMetadata) (*ShortenResult, error) {
	decoded, err := DecodeURL(rawURL)
	if err != nil {
		return nil, err
	}
	if err := ValidateURL(decoded); err != nil {
		return nil, err
	}
	if vanity != "" {
		if err := ValidateVanity(vanity, f.minVanityLength); err != nil {
			return nil, err
		}
	}

	recent, err := f.linkRepo.CountRecentByIP(ctx, metadata.IPAddress, time.Hour)
	if err != nil {
		return nil, NewBusinessError("RATE_CHECK_FAILED", "Failed to check submission quota", err)
	}
	if recent >= f.urlsPerHour {
		return nil, ErrRateLimited
	}

	existing, err := f.linkRepo.ByURL(ctx, decoded)
	if err != nil {
		return nil, NewBusinessError("LOOKUP_FAILED", "Failed to look up existing link", err)
	}
	if existing != nil {
		return &ShortenResult{Link: existing, AlreadyExists: true}, nil
	}

	if vanity != "" {
		taken, err := f.linkRepo.BySegment(ctx, vanity)
		if err != nil {
			return nil, NewBusinessError("LOOKUP_FAILED", "Failed to check vanity availability", err)
		}
		if taken != nil {
			return nil, ErrVanityTaken
		}
	}

	var expiresAt *time.Time
	if daysActive > 0 {
		expiresAt = utils.ToPtr(utils.UTCNowAdd(time.Duration(daysActive) * 24 * time.Hour))
	}

	pageMeta, err := f.prober.Probe(ctx, decoded)
	if err != nil {
		return nil, err
	}

	link := &models.Link{
		OriginalURL:   decoded,
		SubmitterIP:   metadata.IPAddress,
		Title:         pageMeta.Title,
		OGImage:       pageMeta.OGImage,
		OGDescription: pageMeta.OGDescription,
		ExpiresAt:     expiresAt,
		CreatedAt:     utils.UTCNow(),
	}

	if vanity != "" {
		link.Segment = vanity
		if err := f.linkRepo.Save(ctx, link); err != nil {
			if repository.IsUniqueViolation(err) {
				return nil, ErrVanityTaken
			}
			return nil, NewBusinessError("SAVE_FAILED", "Failed to save link", err)
		}
		linksCreated.WithLabelValues("vanity").Inc()
		return &ShortenResult{Link: link}, nil
	}

	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		segment, err := generateSegment()
		if err != nil {
			return nil, NewBusinessError("SEGMENT_FAILED", "Failed to generate segment", err)
		}

		link.Segment = segment
		err = f.linkRepo.Save(ctx, link)
		if err == nil {
			linksCreated.WithLabelValues("generated").Inc()
			return &ShortenResult{Link: link}, nil
		}
		if repository.IsUniqueViolation(err) {
			log.Printf("segment collision on attempt %d request_id=%s", attempt+1, metadata.RequestID)
			continue
		}
		return nil, NewBusinessError("SAVE_FAILED", "Failed to save link", err)
	}

	return nil, fmt.Errorf("%w: gave up after %d attempts", ErrGenerationExhausted, maxGenerateAttempts)
}
