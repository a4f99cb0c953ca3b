package scraping

import (
	"fmt"
	"math"
	"time"

	metadomain "github.com/vfg2006/ads-ingestion-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-ingestion-api/internal/config"
	"github.com/vfg2006/ads-ingestion-api/internal/domain"
	"github.com/vfg2006/ads-ingestion-api/pkg/utils"
)

const (
	unknownPage          = "Unknown Page"
	unknownBrand         = "Unknown Brand"
	noDescription        = "No description available"
	politicalCategory    = "Political/Issue"
	minRandomImpressions = 1000
	maxRandomImpressions = 50999
)

var (
	politicalFields = []string{
		"id",
		"ad_creative_body",
		"page_name",
		"ad_snapshot_url",
		"ad_delivery_start_time",
		"impressions",
		"spend",
	}

	commerceFields = []string{
		"id",
		"ad_creative_body",
		"ad_creative_bodies",
		"ad_creative_link_titles",
		"ad_creative_link_descriptions",
		"ad_creative_link_captions",
		"page_name",
		"ad_snapshot_url",
		"ad_delivery_start_time",
		"ad_delivery_stop_time",
		"impressions",
		"spend",
	}
)

func (s *Service) buildQuery(window domain.DateWindow) *metadomain.AdsArchiveQuery {
	query := &metadomain.AdsArchiveQuery{
		Countries: []string{s.cfg.Scrape.Country},
		DateMin:   window.Start,
		DateMax:   window.End,
		Limit:     s.cfg.Scrape.Limit,
	}

	if s.cfg.Scrape.Mode == config.ModeLenient {
		query.AdType = metadomain.AdTypePoliticalAndIssueAds
		query.Fields = politicalFields
		return query
	}

	query.AdType = metadomain.AdTypeAll
	query.SearchTerms = s.catalog.SearchTerms
	query.Fields = commerceFields
	return query
}

// transform converte os anúncios da Ad Library em linhas da tabela ads.
// No modo keyword os anúncios sem palavra-chave de comércio são descartados.
func (s *Service) transform(archived []metadomain.ArchivedAd, userID string, dateRange int, now time.Time) []*domain.Ad {
	ads := make([]*domain.Ad, 0, len(archived))

	for _, item := range archived {
		if s.cfg.Scrape.Mode == config.ModeKeyword && !s.catalog.MatchesKeyword(item.SearchableText()) {
			continue
		}

		var ad *domain.Ad
		if s.cfg.Scrape.Mode == config.ModeLenient {
			ad = s.politicalAd(item)
		} else {
			ad = s.commerceAd(item)
		}

		ad.Platform = domain.PlatformFacebook
		ad.Country = domain.CountryIndia
		ad.AdURL = stringPtr(item.AdSnapshotURL)
		ad.DaysActive = daysActive(item, dateRange, now, s.random)
		ad.UserID = userID
		ad.ScrapedAt = now

		ads = append(ads, ad)
	}

	return ads
}

func (s *Service) politicalAd(item metadomain.ArchivedAd) *domain.Ad {
	return &domain.Ad{
		Title:       fallbackTitle(item.PageName),
		Description: firstNonEmpty(item.Body(), noDescription),
		Brand:       firstNonEmpty(item.PageName, unknownBrand),
		Category:    politicalCategory,
		Likes:       intBetween(s.random, 100, 1099),
		Comments:    intBetween(s.random, 20, 219),
		Shares:      intBetween(s.random, 10, 109),
	}
}

func (s *Service) commerceAd(item metadomain.ArchivedAd) *domain.Ad {
	impressions, ok := item.Impressions.Lower()
	if !ok {
		impressions = intBetween(s.random, minRandomImpressions, maxRandomImpressions)
	}
	engagement := splitEngagement(impressions, s.random)

	return &domain.Ad{
		Title:       firstNonEmpty(item.LinkTitle(), fallbackTitle(item.PageName)),
		Description: firstNonEmpty(item.Body(), item.LinkDescription(), noDescription),
		Brand:       firstNonEmpty(item.PageName, unknownBrand),
		Category:    s.catalog.Classify(item.SearchableText()),
		Likes:       engagement.Likes,
		Comments:    engagement.Comments,
		Shares:      engagement.Shares,
	}
}

// splitEngagement sintetiza um total de interações a partir das impressões e divide entre
// curtidas, comentários e compartilhamentos. Shares é o resto e pode ficar negativo.
func splitEngagement(impressions int, r Randomizer) domain.Engagement {
	rate := floatBetween(r, 0.02, 0.07)
	total := int(math.Floor(float64(impressions) * rate))
	likes := int(math.Floor(float64(total) * floatBetween(r, 0.60, 0.80)))
	comments := int(math.Floor(float64(total) * floatBetween(r, 0.15, 0.25)))

	return domain.Engagement{
		Impressions: impressions,
		Rate:        rate,
		Total:       total,
		Likes:       likes,
		Comments:    comments,
		Shares:      total - likes - comments,
	}
}

// daysActive usa início e fim de veiculação (fim padrão = agora), com mínimo de 1 dia.
// Sem início legível o valor é sorteado dentro da janela.
func daysActive(item metadomain.ArchivedAd, dateRange int, now time.Time, r Randomizer) int {
	start, err := utils.ParseTimestamp(item.AdDeliveryStartTime)
	if err != nil {
		return randomDaysActive(dateRange, r)
	}

	stop := now
	if t, err := utils.ParseTimestamp(item.AdDeliveryStopTime); err == nil {
		stop = t
	}

	days := int(math.Floor(stop.Sub(start).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

func randomDaysActive(dateRange int, r Randomizer) int {
	if dateRange < 1 {
		dateRange = 1
	}
	return intBetween(r, 1, dateRange)
}

func fallbackTitle(pageName string) string {
	return fmt.Sprintf("%s - Ad", firstNonEmpty(pageName, unknownPage))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
