package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-ingestion-api/internal/api/handler"
	"github.com/vfg2006/ads-ingestion-api/internal/api/handler/router"
	"github.com/vfg2006/ads-ingestion-api/internal/config"
	"github.com/vfg2006/ads-ingestion-api/internal/domain"
	"github.com/vfg2006/ads-ingestion-api/internal/usecases/authenticating"
	"github.com/vfg2006/ads-ingestion-api/internal/usecases/scraping"
	"github.com/vfg2006/ads-ingestion-api/pkg/apiErrors"
	"github.com/vfg2006/ads-ingestion-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
	handler    http.Handler
}

func New(
	config *config.Config,
	scrapeService scraping.Scraper,
	authenticator authenticating.Authenticator,
	gatherer prometheus.Gatherer,
	pinger handler.Pinger,
) (*Server, error) {
	configs := []router.ConfigRouter{
		router.WithRoutes(handler.Healthcheck(pinger)...),
		router.WithNotFound(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiErrors.WriteErrorWithStatus(w, http.StatusNotFound, domain.NewScrapeError(domain.KindInvalidRequest, "Not found", nil))
		})),
	}
	configs = append(configs, handler.Scrape(scrapeService)...)
	if gatherer != nil {
		configs = append(configs, router.WithRoutes(handler.Metrics(gatherer)...))
	}

	rt := router.New(configs...)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(authenticator),
	}

	chain := alice.New(middlewares...).Then(rt)

	srv := &Server{
		handler: chain,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           chain,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// Handler expõe a cadeia completa (middlewares + rotas), usada também pelo adaptador Lambda
func (s Server) Handler() http.Handler {
	return s.handler
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
