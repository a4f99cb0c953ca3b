package scraping

import (
	"time"

	"github.com/vfg2006/ads-ingestion-api/internal/domain"
)

// fallbackAds monta os anúncios de exemplo do catálogo para o usuário
func (s *Service) fallbackAds(userID string, dateRange int, now time.Time) []*domain.Ad {
	ads := make([]*domain.Ad, 0, len(s.catalog.FallbackAds))

	for _, sample := range s.catalog.FallbackAds {
		ads = append(ads, &domain.Ad{
			Title:       sample.Title,
			Description: sample.Description,
			Platform:    domain.PlatformFacebook,
			ImageURL:    stringPtr(sample.ImageURL),
			VideoURL:    sample.VideoURL,
			Likes:       sample.Likes,
			Comments:    sample.Comments,
			Shares:      sample.Shares,
			Country:     domain.CountryIndia,
			DaysActive:  randomDaysActive(dateRange, s.random),
			Brand:       sample.Brand,
			Category:    sample.Category,
			AdURL:       stringPtr(s.catalog.AdsLibraryURL),
			UserID:      userID,
			ScrapedAt:   now,
		})
	}

	return ads
}
