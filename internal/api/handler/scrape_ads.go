package handler

import (
	"bytes"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/ads-ingestion-api/internal/domain"
	"github.com/vfg2006/ads-ingestion-api/internal/usecases/scraping"
	"github.com/vfg2006/ads-ingestion-api/pkg/apiErrors"
	"github.com/vfg2006/ads-ingestion-api/pkg/log"
	"github.com/vfg2006/ads-ingestion-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxRequestBody = 1 << 20

type ScrapeAdsResponse struct {
	Success   bool              `json:"success"`
	Ads       int               `json:"ads"`
	Message   string            `json:"message"`
	Fallback  bool              `json:"fallback"`
	DateRange domain.DateWindow `json:"dateRange"`
	Source    string            `json:"source"`
}

// ScrapeAds aceita qualquer método; o corpo é opcional e apenas dateRange é lido
func ScrapeAds(service scraping.Scraper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.IdentityFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, domain.NewScrapeError(domain.KindAuthentication, "Invalid authentication", nil))
			return
		}

		req, err := decodeScrapeRequest(r.Body)
		if err != nil {
			apiErrors.WriteError(w, err)
			return
		}

		result, err := service.Scrape(r.Context(), identity, req)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).
				WithField("code", apiErrors.Code(err)).
				Error("Erro ao executar scrape de anúncios")
			apiErrors.WriteError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(ScrapeAdsResponse{
			Success:   true,
			Ads:       result.Count(),
			Message:   result.Message(),
			Fallback:  result.Fallback,
			DateRange: result.DateRange,
			Source:    result.Source,
		})
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
		}
	}
}

// decodeScrapeRequest trata corpo vazio como requisição com os valores padrão
func decodeScrapeRequest(body io.Reader) (*domain.ScrapeRequest, error) {
	req := &domain.ScrapeRequest{}
	if body == nil {
		return req, nil
	}

	data, err := io.ReadAll(io.LimitReader(body, maxRequestBody))
	if err != nil {
		return nil, domain.NewScrapeError(domain.KindInvalidRequest, "Invalid request body", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return req, nil
	}

	if err := json.Unmarshal(data, req); err != nil {
		return nil, domain.NewScrapeError(domain.KindInvalidRequest, "Invalid request body", err)
	}

	return req, nil
}
