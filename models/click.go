package models

import "time"

// Click represents a single visit to a short link. Rows are append-only;
// they are never updated or deleted. The link's ClickCount counter is
// maintained separately and may briefly diverge from the row count.
type Click struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	LinkID  uint   `gorm:"column:link_id;not null;index:idx_clicks_link_id" json:"link_id"`
	IP      string `gorm:"size:64;not null" json:"ip"`
	Referer string `gorm:"type:text;not null;default:''" json:"referer,omitempty"`

	ClickedAt time.Time `gorm:"column:clicked_at;default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_clicks_clicked_at" json:"clicked_at"`

	Link *Link `gorm:"foreignKey:LinkID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName returns the table name for Click
func (Click) TableName() string { return "clicks" }

// ClickFilter provides filter fields for repository queries
type ClickFilter struct {
	LinkID        *uint
	IP            *string
	ClickedAfter  *time.Time
	ClickedBefore *time.Time
}
