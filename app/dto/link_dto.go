package dto

// ShortenRequest is the body of a shorten submission
type ShortenRequest struct {
	URL        string `json:"url" validate:"required"`
	Vanity     string `json:"vanity,omitempty" validate:"omitempty,max=15"`
	DaysActive *int   `json:"days_active,omitempty" validate:"omitempty,gt=0"`
}

// ShortenResponse is returned after a link is created or found
type ShortenResponse struct {
	URL     string `json:"url"`
	Segment string `json:"segment"`
}

// WhatIsResponse describes one short link
type WhatIsResponse struct {
	URL           string `json:"url"`
	Segment       string `json:"segment"`
	ShortURL      string `json:"shortUrl"`
	Clicks        int64  `json:"clicks"`
	Created       string `json:"created"`
	Title         string `json:"title,omitempty"`
	OGImage       string `json:"og_image,omitempty"`
	OGDescription string `json:"og_description,omitempty"`
}

// LinkStatsDTO is one row of the stats listing
type LinkStatsDTO struct {
	URL           string  `json:"url"`
	Title         string  `json:"title"`
	Segment       string  `json:"segment"`
	ShortURL      string  `json:"shortUrl"`
	ClickCount    int64   `json:"click_count"`
	CreatedAt     string  `json:"created_at"`
	LastClickedAt string  `json:"last_clicked_at"`
	ExpiresAt     *string `json:"expires_at"`
}
