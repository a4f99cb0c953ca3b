package meta

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ads-ingestion-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-ingestion-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ads-ingestion-api/internal/config"
	"github.com/vfg2006/ads-ingestion-api/pkg/log"
	"github.com/vfg2006/ads-ingestion-api/pkg/utils"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

// AdLibrary é a porta usada pelo scrape para consultar anúncios arquivados
type AdLibrary interface {
	SearchAds(ctx context.Context, query *metadomain.AdsArchiveQuery) ([]metadomain.ArchivedAd, error)
}

type MetaIntegrator struct {
	cfg    *config.Config
	Client metaclient.Client
}

func New(cfg *config.Config, client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

func (s *MetaIntegrator) SearchAds(ctx context.Context, query *metadomain.AdsArchiveQuery) ([]metadomain.ArchivedAd, error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"date_min": query.DateMin,
		"date_max": query.DateMax,
		"ad_type":  query.AdType,
	})

	resp, err := s.Client.GetAdsArchive(ctx, query)
	if err != nil {
		var apiErr *metadomain.APIError
		if errors.As(err, &apiErr) {
			logger = logger.WithField("api_error", apiErr.String())
			if apiErr.IsTokenError() {
				logger.Warn("ads_archive: access token rejected, check FACEBOOK_ACCESS_TOKEN")
			}
		}
		logger.WithError(err).Error("ads_archive: failed to search ads library")
		return nil, err
	}

	logger.WithField("count", len(resp.Data)).Info("ads_archive: ads retrieved")
	if len(resp.Data) > 0 && logrus.IsLevelEnabled(logrus.DebugLevel) {
		logger.Debug(utils.PrettyJson(resp.Data[0]))
	}

	return resp.Data, nil
}
