package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/ads-ingestion-api/internal/api/handler/router"
	"github.com/vfg2006/ads-ingestion-api/internal/usecases/scraping"
)

var scrapePaths = []string{
	"/scrape-ads",
	"/functions/v1/scrape-ads",
}

func Healthcheck(pinger Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(pinger),
		},
	}
}

func Metrics(gatherer prometheus.Gatherer) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
		},
	}
}

// Scrape registra o endpoint nos dois caminhos para qualquer método; OPTIONS é respondido antes, pelo middleware de CORS
func Scrape(service scraping.Scraper) []router.ConfigRouter {
	handler := ScrapeAds(service)

	configs := make([]router.ConfigRouter, 0, len(scrapePaths))
	for _, path := range scrapePaths {
		configs = append(configs, router.WithAnyMethod(path, handler))
	}
	return configs
}
