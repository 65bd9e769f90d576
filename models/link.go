package models

import "time"

// Link represents a shortened URL record. Segment is the short code that
// maps back to the original URL. Both the segment and the original URL
// carry schema-level uniqueness so check-then-insert races are resolved
// by the database, not the application.
// ExpiresAt is optional; an expired link is logically dead but never deleted.
type Link struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Segment       string     `gorm:"size:15;not null;uniqueIndex:uk_links_segment" json:"segment"`
	OriginalURL   string     `gorm:"column:original_url;size:1000;not null;uniqueIndex:uk_links_original_url" json:"original_url"`
	SubmitterIP   string     `gorm:"column:submitter_ip;size:64;not null;index:idx_links_submitter_ip" json:"submitter_ip"`
	Title         string     `gorm:"type:text;not null;default:''" json:"title"`
	OGImage       string     `gorm:"column:og_image;type:text;not null;default:''" json:"og_image,omitempty"`
	OGDescription string     `gorm:"column:og_description;type:text;not null;default:''" json:"og_description,omitempty"`
	ClickCount    int64      `gorm:"not null;default:0" json:"click_count"`
	ExpiresAt     *time.Time `gorm:"index:idx_links_expires_at" json:"expires_at,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_links_created_at" json:"created_at"`
}

// TableName returns the table name for Link
func (Link) TableName() string { return "links" }

// LinkFilter provides filter fields for repository queries
type LinkFilter struct {
	ID            *uint
	Segment       *string
	OriginalURL   *string
	SubmitterIP   *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// LinkStats is one row of the stats view: a link joined with the
// timestamp of its most recent click (nil when never clicked).
type LinkStats struct {
	ID            uint       `gorm:"column:id"`
	OriginalURL   string     `gorm:"column:original_url"`
	Title         string     `gorm:"column:title"`
	Segment       string     `gorm:"column:segment"`
	ClickCount    int64      `gorm:"column:click_count"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	ExpiresAt     *time.Time `gorm:"column:expires_at"`
	LastClickedAt *time.Time `gorm:"column:last_clicked_at"`
}
