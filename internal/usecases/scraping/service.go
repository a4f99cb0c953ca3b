package scraping

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/ads-ingestion-api/infrastructure/integrator/meta"
	"github.com/vfg2006/ads-ingestion-api/infrastructure/repository"
	"github.com/vfg2006/ads-ingestion-api/internal/catalog"
	"github.com/vfg2006/ads-ingestion-api/internal/config"
	"github.com/vfg2006/ads-ingestion-api/internal/domain"
	"github.com/vfg2006/ads-ingestion-api/pkg/log"
	"github.com/vfg2006/ads-ingestion-api/pkg/metrics"
	"github.com/vfg2006/ads-ingestion-api/pkg/utils"
)

const (
	msgInvalidAuthentication = "Invalid authentication"
	msgInvalidDateRange      = "dateRange must be a non-negative number of days"
	msgMissingAccessToken    = "Facebook access token is not configured"
	msgNoMatchingAds         = "No matching ads found for the selected date range"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

type Scraper interface {
	Scrape(ctx context.Context, identity *domain.Identity, req *domain.ScrapeRequest) (*domain.ScrapeResult, error)
}

type Service struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	library meta.AdLibrary
	repo    repository.AdRepository
	metrics *metrics.IngestionMetrics
	random  Randomizer
	now     func() time.Time
}

func NewService(
	cfg *config.Config,
	catalog *catalog.Catalog,
	library meta.AdLibrary,
	repo repository.AdRepository,
	metrics *metrics.IngestionMetrics,
) *Service {
	return &Service{
		cfg:     cfg,
		catalog: catalog,
		library: library,
		repo:    repo,
		metrics: metrics,
		random:  globalRandomizer{},
		now:     time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) WithRandomizer(r Randomizer) *Service {
	s.random = r
	return s
}

// Scrape busca anúncios para a janela pedida, recorre aos exemplos quando o modo permite
// e grava tudo em um único lote em nome do chamador.
func (s *Service) Scrape(ctx context.Context, identity *domain.Identity, req *domain.ScrapeRequest) (*domain.ScrapeResult, error) {
	startedAt := time.Now()

	result, err := s.scrape(ctx, identity, req)

	outcome := "success"
	switch {
	case err != nil:
		outcome = string(domain.KindOf(err))
	case result.Fallback:
		outcome = domain.SourceFallback
	}
	s.metrics.ObserveRun(outcome, time.Since(startedAt))

	return result, err
}

func (s *Service) scrape(ctx context.Context, identity *domain.Identity, req *domain.ScrapeRequest) (*domain.ScrapeResult, error) {
	if identity == nil || identity.ID == "" {
		return nil, domain.NewScrapeError(domain.KindAuthentication, msgInvalidAuthentication, nil)
	}

	dateRange, err := s.resolveDateRange(req)
	if err != nil {
		return nil, err
	}

	ctx = log.WithRunID(ctx, utils.NewRunID())
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"user_id":    identity.ID,
		"mode":       s.cfg.Scrape.Mode,
		"date_range": dateRange,
	})

	now := s.now().UTC()
	window := domain.NewDateWindow(now, dateRange)

	ads, source, err := s.collect(ctx, logger, identity.ID, window, dateRange, now)
	if err != nil {
		logger.WithError(err).Error("Erro ao coletar anúncios")
		return nil, err
	}

	inserted, err := s.repo.InsertBatch(ctx, ads)
	if err != nil {
		logger.WithError(err).Error("Erro ao salvar anúncios")
		return nil, domain.NewScrapeError(domain.KindStorage, "Failed to save ads: "+errors.Cause(err).Error(), err)
	}

	s.metrics.AddInserted(source, len(inserted))
	logger.WithFields(log.Fields{
		"source": source,
		"count":  len(inserted),
	}).Info("Anúncios salvos com sucesso")

	return &domain.ScrapeResult{
		Inserted:  inserted,
		Fallback:  source == domain.SourceFallback,
		Source:    source,
		DateRange: window,
	}, nil
}

func (s *Service) resolveDateRange(req *domain.ScrapeRequest) (int, error) {
	if req == nil || req.DateRange == nil {
		return s.cfg.Scrape.DefaultDateRange, nil
	}

	if *req.DateRange < 0 {
		return 0, domain.NewScrapeError(domain.KindInvalidRequest, msgInvalidDateRange, nil)
	}

	return *req.DateRange, nil
}

// collect decide entre a Ad Library e os anúncios de exemplo conforme o modo configurado
func (s *Service) collect(
	ctx context.Context,
	logger log.Logger,
	userID string,
	window domain.DateWindow,
	dateRange int,
	now time.Time,
) ([]*domain.Ad, string, error) {
	strict := s.cfg.Scrape.Mode == config.ModeStrict

	if s.cfg.Meta.AccessToken == "" {
		if strict {
			return nil, "", domain.NewScrapeError(domain.KindConfiguration, msgMissingAccessToken, nil)
		}
		logger.Warn("Token do Facebook não configurado, usando anúncios de exemplo")
		return s.fallbackAds(userID, dateRange, now), domain.SourceFallback, nil
	}

	archived, err := s.library.SearchAds(ctx, s.buildQuery(window))
	if err != nil {
		if strict {
			return nil, "", domain.NewScrapeError(domain.KindUpstream, "Facebook API error: "+err.Error(), err)
		}
		logger.WithError(err).Warn("Erro ao consultar a Ad Library, usando anúncios de exemplo")
		return s.fallbackAds(userID, dateRange, now), domain.SourceFallback, nil
	}

	ads := s.transform(archived, userID, dateRange, now)
	if len(ads) == 0 {
		if strict {
			return nil, "", domain.NewScrapeError(domain.KindEmptyResult, msgNoMatchingAds, nil)
		}
		logger.WithField("received", len(archived)).Info("Nenhum anúncio aproveitável, usando anúncios de exemplo")
		return s.fallbackAds(userID, dateRange, now), domain.SourceFallback, nil
	}

	return ads, domain.SourceFacebookAdLibrary, nil
}
