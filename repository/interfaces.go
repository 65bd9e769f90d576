// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/pabst/shortener/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// LinkRepository defines operations for shortened links
type LinkRepository interface {
	Repository[models.Link, models.LinkFilter]
	BySegment(ctx context.Context, segment string) (*models.Link, error)
	ByURL(ctx context.Context, originalURL string) (*models.Link, error)
	CountRecentByIP(ctx context.Context, ip string, window time.Duration) (int64, error)
	IncrementClickCount(ctx context.Context, linkID uint) error
	ListWithStats(ctx context.Context) ([]*models.LinkStats, error)
}

// ClickRepository defines operations for click events
type ClickRepository interface {
	Repository[models.Click, models.ClickFilter]
	ListByLink(ctx context.Context, linkID uint, limit, offset int) ([]*models.Click, error)
	LastClickedAt(ctx context.Context, linkID uint) (*time.Time, error)
}
