package business_flow

import (
	"context"
	"sync"
	"time"

	"github.com/pabst/shortener/app/services"
	"github.com/pabst/shortener/models"
	"gorm.io/gorm"
)

// fakeLinkRepo is an in-memory LinkRepository that mimics the unique
// constraints of the real schema.
type fakeLinkRepo struct {
	mu     sync.Mutex
	links  []*models.Link
	nextID uint

	recentCount      int64
	forcedCollisions int
	saveErr          error
	increments       map[uint]int
	statsRows        []*models.LinkStats
}

func newFakeLinkRepo() *fakeLinkRepo {
	return &fakeLinkRepo{increments: map[uint]int{}}
}

func (f *fakeLinkRepo) seed(link *models.Link) *models.Link {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	link.ID = f.nextID
	f.links = append(f.links, link)
	return link
}

func (f *fakeLinkRepo) ByID(ctx context.Context, id uint) (*models.Link, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.links {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}

func (f *fakeLinkRepo) ByFilter(ctx context.Context, filter models.LinkFilter, orderBy string, limit, offset int) ([]*models.Link, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Link
	for _, l := range f.links {
		if filter.Segment != nil && l.Segment != *filter.Segment {
			continue
		}
		if filter.OriginalURL != nil && l.OriginalURL != *filter.OriginalURL {
			continue
		}
		if filter.SubmitterIP != nil && l.SubmitterIP != *filter.SubmitterIP {
			continue
		}
		out = append(out, l)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeLinkRepo) Save(ctx context.Context, link *models.Link) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	if f.forcedCollisions > 0 {
		f.forcedCollisions--
		return gorm.ErrDuplicatedKey
	}
	for _, l := range f.links {
		if l.Segment == link.Segment || l.OriginalURL == link.OriginalURL {
			return gorm.ErrDuplicatedKey
		}
	}
	f.nextID++
	link.ID = f.nextID
	stored := *link
	f.links = append(f.links, &stored)
	return nil
}

func (f *fakeLinkRepo) SaveBatch(ctx context.Context, links []*models.Link) error {
	for _, l := range links {
		if err := f.Save(ctx, l); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeLinkRepo) Count(ctx context.Context, filter models.LinkFilter) (int64, error) {
	links, err := f.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return 0, err
	}
	return int64(len(links)), nil
}

func (f *fakeLinkRepo) Exists(ctx context.Context, filter models.LinkFilter) (bool, error) {
	count, err := f.Count(ctx, filter)
	return count > 0, err
}

func (f *fakeLinkRepo) BySegment(ctx context.Context, segment string) (*models.Link, error) {
	links, err := f.ByFilter(ctx, models.LinkFilter{Segment: &segment}, "", 1, 0)
	if err != nil || len(links) == 0 {
		return nil, err
	}
	return links[0], nil
}

func (f *fakeLinkRepo) ByURL(ctx context.Context, originalURL string) (*models.Link, error) {
	links, err := f.ByFilter(ctx, models.LinkFilter{OriginalURL: &originalURL}, "", 1, 0)
	if err != nil || len(links) == 0 {
		return nil, err
	}
	return links[0], nil
}

func (f *fakeLinkRepo) CountRecentByIP(ctx context.Context, ip string, window time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.recentCount, nil
}

func (f *fakeLinkRepo) IncrementClickCount(ctx context.Context, linkID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.increments[linkID]++
	return nil
}

func (f *fakeLinkRepo) ListWithStats(ctx context.Context) ([]*models.LinkStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statsRows, nil
}

// fakeClickRepo records saved clicks in memory
type fakeClickRepo struct {
	mu      sync.Mutex
	clicks  []*models.Click
	saveErr error
}

func (f *fakeClickRepo) ByID(ctx context.Context, id uint) (*models.Click, error) {
	return nil, nil
}

func (f *fakeClickRepo) ByFilter(ctx context.Context, filter models.ClickFilter, orderBy string, limit, offset int) ([]*models.Click, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Click
	for _, c := range f.clicks {
		if filter.LinkID != nil && c.LinkID != *filter.LinkID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeClickRepo) Save(ctx context.Context, click *models.Click) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	click.ID = uint(len(f.clicks) + 1)
	f.clicks = append(f.clicks, click)
	return nil
}

func (f *fakeClickRepo) SaveBatch(ctx context.Context, clicks []*models.Click) error {
	for _, c := range clicks {
		if err := f.Save(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeClickRepo) Count(ctx context.Context, filter models.ClickFilter) (int64, error) {
	clicks, err := f.ByFilter(ctx, filter, "", 0, 0)
	return int64(len(clicks)), err
}

func (f *fakeClickRepo) Exists(ctx context.Context, filter models.ClickFilter) (bool, error) {
	count, err := f.Count(ctx, filter)
	return count > 0, err
}

func (f *fakeClickRepo) ListByLink(ctx context.Context, linkID uint, limit, offset int) ([]*models.Click, error) {
	return f.ByFilter(ctx, models.ClickFilter{LinkID: &linkID}, "clicked_at DESC", limit, offset)
}

func (f *fakeClickRepo) LastClickedAt(ctx context.Context, linkID uint) (*time.Time, error) {
	clicks, err := f.ListByLink(ctx, linkID, 0, 0)
	if err != nil || len(clicks) == 0 {
		return nil, err
	}
	return &clicks[len(clicks)-1].ClickedAt, nil
}

// fakeProber answers probes without touching the network
type fakeProber struct {
	mu     sync.Mutex
	meta   *services.PageMetadata
	err    error
	probed []string
}

func (f *fakeProber) Probe(ctx context.Context, rawURL string) (*services.PageMetadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.probed = append(f.probed, rawURL)
	if f.err != nil {
		return nil, f.err
	}
	if f.meta != nil {
		return f.meta, nil
	}
	return &services.PageMetadata{}, nil
}

func (f *fakeProber) probeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.probed)
}

func testMetadata() *ClientMetadata {
	return &ClientMetadata{
		IPAddress: "203.0.113.7",
		UserAgent: "test-agent",
		Referer:   "https://referrer.example",
		RequestID: "req-1",
	}
}
