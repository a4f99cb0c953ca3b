package app

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-ingestion-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-ingestion-api/infrastructure/integrator/meta"
	"github.com/vfg2006/ads-ingestion-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ads-ingestion-api/infrastructure/repository"
	"github.com/vfg2006/ads-ingestion-api/internal/api"
	"github.com/vfg2006/ads-ingestion-api/internal/catalog"
	"github.com/vfg2006/ads-ingestion-api/internal/config"
	"github.com/vfg2006/ads-ingestion-api/internal/usecases/authenticating"
	"github.com/vfg2006/ads-ingestion-api/internal/usecases/scraping"
	"github.com/vfg2006/ads-ingestion-api/pkg/metrics"
)

// App agrupa o servidor montado e os recursos que precisam ser liberados no fim
type App struct {
	Server *api.Server
	conn   *postgres.Connection
}

// Build monta toda a árvore de dependências a partir da configuração já carregada.
// Usado tanto pelo binário HTTP quanto pelo adaptador Lambda.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao conectar ao PostgreSQL")
	}
	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")

	cat, err := catalog.Load()
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "erro ao carregar catálogo")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	metaIntegrator := meta.New(cfg, metaclient.NewClient(cfg))
	adRepo := repository.NewAdRepository(conn)
	authenticator := authenticating.NewAuthenticator(cfg)

	scrapeService := scraping.NewService(cfg, cat, metaIntegrator, adRepo, metrics.NewIngestionMetrics(registry))

	server, err := api.New(cfg, scrapeService, authenticator, registry, conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"scrape_mode":     cfg.Scrape.Mode,
		"auth_mode":       cfg.Auth.Mode,
		"catalog_version": cat.Version,
	}).Info("Aplicação montada")

	return &App{Server: server, conn: conn}, nil
}

func (a *App) Close() error {
	if a.conn == nil {
		return nil
	}
	return a.conn.Close()
}
