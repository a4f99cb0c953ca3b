package domain

import (
	"time"
)

const (
	PlatformFacebook = "Facebook"
	CountryIndia     = "India"
)

// Ad representa uma linha da tabela ads
type Ad struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Platform    string    `json:"platform"`
	ImageURL    *string   `json:"image_url"`
	VideoURL    *string   `json:"video_url"`
	Likes       int       `json:"likes"`
	Comments    int       `json:"comments"`
	Shares      int       `json:"shares"`
	Country     string    `json:"country"`
	DaysActive  int       `json:"days_active"`
	Brand       string    `json:"brand"`
	Category    string    `json:"category"`
	AdURL       *string   `json:"ad_url"`
	UserID      string    `json:"user_id"`
	ScrapedAt   time.Time `json:"scraped_at"`
}

// Engagement guarda o total sintetizado e a divisão entre curtidas, comentários e compartilhamentos
type Engagement struct {
	Impressions int
	Rate        float64
	Total       int
	Likes       int
	Comments    int
	Shares      int
}
