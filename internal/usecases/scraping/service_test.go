package scraping

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ads-ingestion-api/infrastructure/integrator/meta"
	metadomain "github.com/vfg2006/ads-ingestion-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-ingestion-api/infrastructure/integrator/meta/metaclient"
	metamocks "github.com/vfg2006/ads-ingestion-api/infrastructure/integrator/meta/mocks"
	"github.com/vfg2006/ads-ingestion-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ads-ingestion-api/internal/catalog"
	"github.com/vfg2006/ads-ingestion-api/internal/config"
	"github.com/vfg2006/ads-ingestion-api/internal/domain"
	"github.com/vfg2006/ads-ingestion-api/pkg/apiErrors"
	"github.com/vfg2006/ads-ingestion-api/pkg/log"
	"github.com/vfg2006/ads-ingestion-api/pkg/metrics"
	"go.uber.org/mock/gomock"
)

var (
	fixedNow = time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)
	caller   = &domain.Identity{ID: "user-123"}
)

func TestMain(m *testing.M) {
	log.SetupTestLogger()
	os.Exit(m.Run())
}

func intPtr(v int) *int { return &v }

type fixture struct {
	service *Service
	library *metamocks.MockAdLibrary
	repo    *mocks.MockAdRepository
}

func newFixture(t *testing.T, mode, token string) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	library := metamocks.NewMockAdLibrary(ctrl)
	repo := mocks.NewMockAdRepository(ctrl)

	c, err := catalog.Load()
	require.NoError(t, err)

	cfg := &config.Config{
		Meta:   config.Meta{AccessToken: token},
		Scrape: config.Scrape{Mode: mode, DefaultDateRange: 30, Limit: 50, Country: "IN"},
	}

	service := NewService(cfg, c, library, repo, metrics.NewIngestionMetrics(prometheus.NewRegistry())).
		WithClock(func() time.Time { return fixedNow }).
		WithRandomizer(rand.New(rand.NewSource(42)))

	return &fixture{service: service, library: library, repo: repo}
}

// expectInsert captura o lote gravado e devolve as linhas com ids atribuídos
func (f *fixture) expectInsert(captured *[]*domain.Ad) {
	f.repo.EXPECT().
		InsertBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ads []*domain.Ad) ([]*domain.Ad, error) {
			for i := range ads {
				ads[i].ID = int64(i + 1)
			}
			*captured = ads
			return ads, nil
		})
}

func commerceAd() metadomain.ArchivedAd {
	return metadomain.ArchivedAd{
		ID:                   "1001",
		AdCreativeBodies:     []string{"Big sale on mobile phones, free shipping across India"},
		AdCreativeLinkTitles: []string{"Mega Phone Sale"},
		PageName:             "TechStore",
		AdSnapshotURL:        "https://www.facebook.com/ads/archive/render_ad/?id=1001",
		AdDeliveryStartTime:  "2024-03-10T10:00:00+0000",
		Impressions:          &metadomain.Range{LowerBound: "10000", UpperBound: "14999"},
	}
}

func civicAd() metadomain.ArchivedAd {
	return metadomain.ArchivedAd{
		ID:             "1002",
		AdCreativeBody: "Join our community meeting this weekend",
		PageName:       "Local Civic Group",
	}
}

func descriptionOnlyAd() metadomain.ArchivedAd {
	return metadomain.ArchivedAd{
		ID:                         "1003",
		AdCreativeLinkDescriptions: []string{"Order now and get 10% off skincare"},
		PageName:                   "Glow",
	}
}

func assertFallbackBatch(t *testing.T, ads []*domain.Ad, dateRange int) {
	t.Helper()

	require.Len(t, ads, 7)
	for _, ad := range ads {
		assert.Equal(t, "user-123", ad.UserID)
		assert.Equal(t, domain.PlatformFacebook, ad.Platform)
		assert.Equal(t, domain.CountryIndia, ad.Country)
		assert.Equal(t, fixedNow, ad.ScrapedAt)
		assert.Nil(t, ad.VideoURL)
		require.NotNil(t, ad.AdURL)
		assert.Equal(t, "https://facebook.com/ads/library", *ad.AdURL)
		assert.GreaterOrEqual(t, ad.DaysActive, 1)
		assert.LessOrEqual(t, ad.DaysActive, dateRange)
	}
	assert.Equal(t, "Digital Marketing Course - Learn Online", ads[0].Title)
	assert.Equal(t, 2100, ads[1].Likes)
}

func TestScrape_WithoutAccessToken(t *testing.T) {
	for _, mode := range []string{config.ModeLenient, config.ModeKeyword} {
		t.Run(mode, func(t *testing.T) {
			f := newFixture(t, mode, "")
			f.library.EXPECT().SearchAds(gomock.Any(), gomock.Any()).Times(0)

			var inserted []*domain.Ad
			f.expectInsert(&inserted)

			result, err := f.service.Scrape(context.Background(), caller, &domain.ScrapeRequest{})
			require.NoError(t, err)

			assert.True(t, result.Fallback)
			assert.Equal(t, domain.SourceFallback, result.Source)
			assert.Equal(t, 7, result.Count())
			assert.Equal(t, "Sample Indian ads data added (7 ads)", result.Message())
			assert.Equal(t, domain.DateWindow{Start: "2024-02-19", End: "2024-03-20"}, result.DateRange)
			assertFallbackBatch(t, inserted, 30)
		})
	}

	t.Run(config.ModeStrict, func(t *testing.T) {
		f := newFixture(t, config.ModeStrict, "")
		f.library.EXPECT().SearchAds(gomock.Any(), gomock.Any()).Times(0)
		f.repo.EXPECT().InsertBatch(gomock.Any(), gomock.Any()).Times(0)

		_, err := f.service.Scrape(context.Background(), caller, nil)
		require.Error(t, err)
		assert.Equal(t, domain.KindConfiguration, domain.KindOf(err))
	})
}

func TestScrape_KeywordMode(t *testing.T) {
	t.Run("keeps only commerce ads", func(t *testing.T) {
		f := newFixture(t, config.ModeKeyword, "fb-token")

		f.library.EXPECT().
			SearchAds(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, query *metadomain.AdsArchiveQuery) ([]metadomain.ArchivedAd, error) {
				assert.Equal(t, []string{"IN"}, query.Countries)
				assert.Equal(t, "2024-03-13", query.DateMin)
				assert.Equal(t, "2024-03-20", query.DateMax)
				assert.Equal(t, metadomain.AdTypeAll, query.AdType)
				assert.Equal(t, 50, query.Limit)
				assert.NotEmpty(t, query.SearchTerms)
				assert.Contains(t, query.Fields, "ad_creative_link_titles")
				assert.Contains(t, query.Fields, "ad_delivery_stop_time")
				return []metadomain.ArchivedAd{commerceAd(), civicAd(), descriptionOnlyAd()}, nil
			})

		var inserted []*domain.Ad
		f.expectInsert(&inserted)

		result, err := f.service.Scrape(context.Background(), caller, &domain.ScrapeRequest{DateRange: intPtr(7)})
		require.NoError(t, err)

		assert.False(t, result.Fallback)
		assert.Equal(t, domain.SourceFacebookAdLibrary, result.Source)
		assert.Equal(t, "Successfully scraped 2 real Facebook ads from India", result.Message())
		require.Len(t, inserted, 2)

		phone := inserted[0]
		assert.Equal(t, "Mega Phone Sale", phone.Title)
		assert.Equal(t, "Big sale on mobile phones, free shipping across India", phone.Description)
		assert.Equal(t, "TechStore", phone.Brand)
		assert.Equal(t, "Electronics", phone.Category)
		assert.Equal(t, 10, phone.DaysActive)
		assert.Nil(t, phone.ImageURL)
		require.NotNil(t, phone.AdURL)
		assert.Equal(t, "https://www.facebook.com/ads/archive/render_ad/?id=1001", *phone.AdURL)
		total := phone.Likes + phone.Comments + phone.Shares
		assert.GreaterOrEqual(t, total, 200)
		assert.LessOrEqual(t, total, 700)

		glow := inserted[1]
		assert.Equal(t, "Glow - Ad", glow.Title)
		assert.Equal(t, "Order now and get 10% off skincare", glow.Description)
		assert.Equal(t, "Beauty", glow.Category)
		assert.GreaterOrEqual(t, glow.DaysActive, 1)
		assert.LessOrEqual(t, glow.DaysActive, 7)

		for _, ad := range inserted {
			assert.Equal(t, "user-123", ad.UserID)
			assert.NotEqual(t, "Local Civic Group", ad.Brand)
		}
	})

	t.Run("falls back when every ad is filtered out", func(t *testing.T) {
		f := newFixture(t, config.ModeKeyword, "fb-token")
		f.library.EXPECT().SearchAds(gomock.Any(), gomock.Any()).Return([]metadomain.ArchivedAd{civicAd()}, nil)

		var inserted []*domain.Ad
		f.expectInsert(&inserted)

		result, err := f.service.Scrape(context.Background(), caller, nil)
		require.NoError(t, err)
		assert.True(t, result.Fallback)
		assertFallbackBatch(t, inserted, 30)
	})

	t.Run("falls back when the ad library fails", func(t *testing.T) {
		f := newFixture(t, config.ModeKeyword, "fb-token")
		f.library.EXPECT().
			SearchAds(gomock.Any(), gomock.Any()).
			Return(nil, &metadomain.APIError{StatusCode: 400, Details: metadomain.ErrorDetails{Message: "Invalid OAuth access token"}})

		var inserted []*domain.Ad
		f.expectInsert(&inserted)

		result, err := f.service.Scrape(context.Background(), caller, nil)
		require.NoError(t, err)
		assert.True(t, result.Fallback)
		assert.Equal(t, domain.SourceFallback, result.Source)
		assertFallbackBatch(t, inserted, 30)
	})
}

func TestScrape_StrictMode(t *testing.T) {
	t.Run("ad library error aborts", func(t *testing.T) {
		f := newFixture(t, config.ModeStrict, "fb-token")
		f.library.EXPECT().
			SearchAds(gomock.Any(), gomock.Any()).
			Return(nil, &metadomain.APIError{StatusCode: 400, Details: metadomain.ErrorDetails{Message: "Invalid OAuth access token"}})
		f.repo.EXPECT().InsertBatch(gomock.Any(), gomock.Any()).Times(0)

		_, err := f.service.Scrape(context.Background(), caller, nil)
		require.Error(t, err)
		assert.Equal(t, "Facebook API error: Invalid OAuth access token", err.Error())
		assert.Equal(t, domain.KindUpstream, domain.KindOf(err))
	})

	t.Run("empty result aborts", func(t *testing.T) {
		f := newFixture(t, config.ModeStrict, "fb-token")
		f.library.EXPECT().SearchAds(gomock.Any(), gomock.Any()).Return([]metadomain.ArchivedAd{}, nil)
		f.repo.EXPECT().InsertBatch(gomock.Any(), gomock.Any()).Times(0)

		_, err := f.service.Scrape(context.Background(), caller, nil)
		require.Error(t, err)
		assert.Equal(t, "No matching ads found for the selected date range", err.Error())
		assert.Equal(t, domain.KindEmptyResult, domain.KindOf(err))
	})

	t.Run("does not apply the keyword filter", func(t *testing.T) {
		f := newFixture(t, config.ModeStrict, "fb-token")
		f.library.EXPECT().SearchAds(gomock.Any(), gomock.Any()).Return([]metadomain.ArchivedAd{civicAd()}, nil)

		var inserted []*domain.Ad
		f.expectInsert(&inserted)

		result, err := f.service.Scrape(context.Background(), caller, nil)
		require.NoError(t, err)
		assert.False(t, result.Fallback)
		require.Len(t, inserted, 1)
		assert.Equal(t, "Local Civic Group", inserted[0].Brand)
		assert.Equal(t, "General", inserted[0].Category)
	})
}

func TestScrape_StrictModeKeepsAccessTokenPrivate(t *testing.T) {
	unreachable := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	unreachable.Close()

	c, err := catalog.Load()
	require.NoError(t, err)

	cfg := &config.Config{
		Meta: config.Meta{
			URL:            unreachable.URL + "/v18.0",
			AccessToken:    "SECRET-FB-TOKEN",
			TimeoutSeconds: 2,
		},
		Scrape: config.Scrape{Mode: config.ModeStrict, DefaultDateRange: 30, Limit: 50, Country: "IN"},
	}

	repo := mocks.NewMockAdRepository(gomock.NewController(t))
	repo.EXPECT().InsertBatch(gomock.Any(), gomock.Any()).Times(0)

	service := NewService(cfg, c, meta.New(cfg, metaclient.NewClient(cfg)), repo, nil).
		WithClock(func() time.Time { return fixedNow })

	_, err = service.Scrape(context.Background(), caller, nil)
	require.Error(t, err)
	assert.Equal(t, domain.KindUpstream, domain.KindOf(err))

	rec := httptest.NewRecorder()
	apiErrors.WriteError(rec, err)

	assert.Contains(t, rec.Body.String(), "Facebook API error: ")
	assert.NotContains(t, rec.Body.String(), "SECRET-FB-TOKEN")
	assert.NotContains(t, rec.Body.String(), "access_token")
}

func TestScrape_LenientMode(t *testing.T) {
	f := newFixture(t, config.ModeLenient, "fb-token")

	f.library.EXPECT().
		SearchAds(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, query *metadomain.AdsArchiveQuery) ([]metadomain.ArchivedAd, error) {
			assert.Equal(t, metadomain.AdTypePoliticalAndIssueAds, query.AdType)
			assert.Empty(t, query.SearchTerms)
			assert.NotContains(t, query.Fields, "ad_creative_link_titles")
			return []metadomain.ArchivedAd{civicAd(), {ID: "1004"}}, nil
		})

	var inserted []*domain.Ad
	f.expectInsert(&inserted)

	result, err := f.service.Scrape(context.Background(), caller, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count())
	require.Len(t, inserted, 2)

	assert.Equal(t, "Local Civic Group - Ad", inserted[0].Title)
	assert.Equal(t, "Join our community meeting this weekend", inserted[0].Description)

	anonymous := inserted[1]
	assert.Equal(t, "Unknown Page - Ad", anonymous.Title)
	assert.Equal(t, "No description available", anonymous.Description)
	assert.Equal(t, "Unknown Brand", anonymous.Brand)
	assert.Nil(t, anonymous.AdURL)

	for _, ad := range inserted {
		assert.Equal(t, "Political/Issue", ad.Category)
		assert.GreaterOrEqual(t, ad.Likes, 100)
		assert.LessOrEqual(t, ad.Likes, 1099)
		assert.GreaterOrEqual(t, ad.Comments, 20)
		assert.LessOrEqual(t, ad.Comments, 219)
		assert.GreaterOrEqual(t, ad.Shares, 10)
		assert.LessOrEqual(t, ad.Shares, 109)
	}
}

func TestScrape_StorageError(t *testing.T) {
	f := newFixture(t, config.ModeKeyword, "")
	f.repo.EXPECT().
		InsertBatch(gomock.Any(), gomock.Any()).
		Return(nil, errors.Wrap(&pq.Error{Message: `relation "ads" does not exist`, Code: "42P01"}, "erro no banco de dados"))

	_, err := f.service.Scrape(context.Background(), caller, nil)
	require.Error(t, err)
	assert.Equal(t, domain.KindStorage, domain.KindOf(err))
	assert.Equal(t, `Failed to save ads: pq: relation "ads" does not exist`, err.Error())
}

func TestScrape_InvalidInput(t *testing.T) {
	t.Run("negative date range", func(t *testing.T) {
		f := newFixture(t, config.ModeKeyword, "fb-token")
		f.library.EXPECT().SearchAds(gomock.Any(), gomock.Any()).Times(0)
		f.repo.EXPECT().InsertBatch(gomock.Any(), gomock.Any()).Times(0)

		_, err := f.service.Scrape(context.Background(), caller, &domain.ScrapeRequest{DateRange: intPtr(-1)})
		assert.Equal(t, domain.KindInvalidRequest, domain.KindOf(err))
	})

	t.Run("missing identity", func(t *testing.T) {
		f := newFixture(t, config.ModeKeyword, "fb-token")
		f.library.EXPECT().SearchAds(gomock.Any(), gomock.Any()).Times(0)
		f.repo.EXPECT().InsertBatch(gomock.Any(), gomock.Any()).Times(0)

		_, err := f.service.Scrape(context.Background(), &domain.Identity{}, nil)
		assert.Equal(t, domain.KindAuthentication, domain.KindOf(err))
		assert.Equal(t, "Invalid authentication", err.Error())
	})

	t.Run("zero date range", func(t *testing.T) {
		f := newFixture(t, config.ModeKeyword, "")

		var inserted []*domain.Ad
		f.expectInsert(&inserted)

		result, err := f.service.Scrape(context.Background(), caller, &domain.ScrapeRequest{DateRange: intPtr(0)})
		require.NoError(t, err)
		assert.Equal(t, domain.DateWindow{Start: "2024-03-20", End: "2024-03-20"}, result.DateRange)
		assertFallbackBatch(t, inserted, 1)
	})
}
