// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pabst/shortener/models"
	"github.com/pabst/shortener/utils"
	"gorm.io/gorm"
)

// LinkRepositoryImpl implements LinkRepository interface using GORM
type LinkRepositoryImpl struct {
	*BaseRepository[models.Link, models.LinkFilter]
}

// NewLinkRepository creates a new link repository instance
func NewLinkRepository(db *gorm.DB) *LinkRepositoryImpl {
	return &LinkRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Link, models.LinkFilter](db),
	}
}

// applyFilter applies filter conditions to the query
func (r *LinkRepositoryImpl) applyFilter(query *gorm.DB, filter models.LinkFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.Segment != nil {
		query = query.Where("segment = ?", *filter.Segment)
	}
	if filter.OriginalURL != nil {
		query = query.Where("original_url = ?", *filter.OriginalURL)
	}
	if filter.SubmitterIP != nil {
		query = query.Where("submitter_ip = ?", *filter.SubmitterIP)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at <= ?", *filter.CreatedBefore)
	}
	return query
}

// ByFilter retrieves links matching the filter criteria
func (r *LinkRepositoryImpl) ByFilter(ctx context.Context, filter models.LinkFilter, orderBy string, limit, offset int) ([]*models.Link, error) {
	db := r.getDB(ctx)

	query := r.applyFilter(db.Model(&models.Link{}), filter)

	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var links []*models.Link
	if err := query.Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to find links by filter: %w", err)
	}

	return links, nil
}

// Count returns the number of links matching the filter criteria
func (r *LinkRepositoryImpl) Count(ctx context.Context, filter models.LinkFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.Link{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count links: %w", err)
	}

	return count, nil
}

// Exists checks if any link matches the filter criteria
func (r *LinkRepositoryImpl) Exists(ctx context.Context, filter models.LinkFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// BySegment retrieves a link by its segment, nil when absent
func (r *LinkRepositoryImpl) BySegment(ctx context.Context, segment string) (*models.Link, error) {
	links, err := r.ByFilter(ctx, models.LinkFilter{Segment: &segment}, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, nil
	}
	return links[0], nil
}

// ByURL retrieves a link by its exact original URL, nil when absent
func (r *LinkRepositoryImpl) ByURL(ctx context.Context, originalURL string) (*models.Link, error) {
	links, err := r.ByFilter(ctx, models.LinkFilter{OriginalURL: &originalURL}, "", 1, 0)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, nil
	}
	return links[0], nil
}

// CountRecentByIP counts links created by an IP within the trailing window
func (r *LinkRepositoryImpl) CountRecentByIP(ctx context.Context, ip string, window time.Duration) (int64, error) {
	since := utils.UTCNow().Add(-window)
	return r.Count(ctx, models.LinkFilter{SubmitterIP: &ip, CreatedAfter: &since})
}

// IncrementClickCount atomically increments a link's click counter
func (r *LinkRepositoryImpl) IncrementClickCount(ctx context.Context, linkID uint) error {
	db := r.getDB(ctx)

	result := db.Model(&models.Link{}).
		Where("id = ?", linkID).
		UpdateColumn("click_count", gorm.Expr("click_count + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to increment click count for link %d: %w", linkID, result.Error)
	}

	return nil
}

// ListWithStats returns all links joined with their most recent click,
// newest links first
func (r *LinkRepositoryImpl) ListWithStats(ctx context.Context) ([]*models.LinkStats, error) {
	db := r.getDB(ctx)

	var rows []*models.LinkStats
	err := db.Model(&models.Link{}).
		Select("links.id, links.original_url, links.title, links.segment, links.click_count, links.created_at, links.expires_at, MAX(clicks.clicked_at) AS last_clicked_at").
		Joins("LEFT JOIN clicks ON clicks.link_id = links.id").
		Group("links.id").
		Order("links.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list link stats: %w", err)
	}

	return rows, nil
}
