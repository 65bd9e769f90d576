// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pabst/shortener/models"
	"gorm.io/gorm"
)

// ClickRepositoryImpl implements ClickRepository interface using GORM
type ClickRepositoryImpl struct {
	*BaseRepository[models.Click, models.ClickFilter]
}

// NewClickRepository creates a new click repository instance
func NewClickRepository(db *gorm.DB) *ClickRepositoryImpl {
	return &ClickRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Click, models.ClickFilter](db),
	}
}

// applyFilter applies filter conditions to the query
func (r *ClickRepositoryImpl) applyFilter(query *gorm.DB, filter models.ClickFilter) *gorm.DB {
	if filter.LinkID != nil {
		query = query.Where("link_id = ?", *filter.LinkID)
	}
	if filter.IP != nil {
		query = query.Where("ip = ?", *filter.IP)
	}
	if filter.ClickedAfter != nil {
		query = query.Where("clicked_at >= ?", *filter.ClickedAfter)
	}
	if filter.ClickedBefore != nil {
		query = query.Where("clicked_at <= ?", *filter.ClickedBefore)
	}
	return query
}

// ByFilter retrieves clicks matching the filter criteria
func (r *ClickRepositoryImpl) ByFilter(ctx context.Context, filter models.ClickFilter, orderBy string, limit, offset int) ([]*models.Click, error) {
	db := r.getDB(ctx)

	query := r.applyFilter(db.Model(&models.Click{}), filter)

	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var clicks []*models.Click
	if err := query.Find(&clicks).Error; err != nil {
		return nil, fmt.Errorf("failed to find clicks by filter: %w", err)
	}

	return clicks, nil
}

// Count returns the number of clicks matching the filter criteria
func (r *ClickRepositoryImpl) Count(ctx context.Context, filter models.ClickFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.Click{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count clicks: %w", err)
	}

	return count, nil
}

// Exists checks if any click matches the filter criteria
func (r *ClickRepositoryImpl) Exists(ctx context.Context, filter models.ClickFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByLink retrieves clicks for a link, most recent first
func (r *ClickRepositoryImpl) ListByLink(ctx context.Context, linkID uint, limit, offset int) ([]*models.Click, error) {
	return r.ByFilter(ctx, models.ClickFilter{LinkID: &linkID}, "clicked_at DESC", limit, offset)
}

// LastClickedAt returns the timestamp of the most recent click for a link,
// nil when the link was never clicked
func (r *ClickRepositoryImpl) LastClickedAt(ctx context.Context, linkID uint) (*time.Time, error) {
	clicks, err := r.ListByLink(ctx, linkID, 1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to find last click for link %d: %w", linkID, err)
	}
	if len(clicks) == 0 {
		return nil, nil
	}
	return &clicks[0].ClickedAt, nil
}
