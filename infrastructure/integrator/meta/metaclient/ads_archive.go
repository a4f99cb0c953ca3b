package metaclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ads-ingestion-api/infrastructure/integrator/meta/domain"
)

type ResponseAdsArchive struct {
	Data   []metadomain.ArchivedAd  `json:"data"`
	Paging *metadomain.Paging       `json:"paging,omitempty"`
	Error  *metadomain.ErrorDetails `json:"error,omitempty"`
}

// GetAdsArchive busca apenas a primeira página do ads_archive
func (c *MetaClient) GetAdsArchive(ctx context.Context, query *metadomain.AdsArchiveQuery) (*ResponseAdsArchive, error) {
	baseURL := fmt.Sprintf("%s/ads_archive", c.Cfg.Meta.URL)

	params, err := archiveParams(query)
	if err != nil {
		return nil, err
	}
	params.Add("access_token", c.Cfg.Meta.AccessToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		err = redactRequestError(err, baseURL, c.Cfg.Meta.AccessToken)
		logrus.WithError(err).Error("Erro ao fazer a requisição")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := c.HandleResponse(resp)
	if err != nil {
		return nil, err
	}

	var response ResponseAdsArchive
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, errors.Wrap(err, "resposta inválida da Ad Library")
	}

	if response.Error != nil {
		return nil, &metadomain.APIError{StatusCode: resp.StatusCode, Details: *response.Error}
	}

	return &response, nil
}

func archiveParams(query *metadomain.AdsArchiveQuery) (url.Values, error) {
	if query == nil {
		return nil, errors.New("query é obrigatória")
	}

	countries, err := json.Marshal(query.Countries)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Add("ad_reached_countries", string(countries))
	params.Add("ad_delivery_date_min", query.DateMin)
	params.Add("ad_delivery_date_max", query.DateMax)
	params.Add("ad_type", query.AdType)
	params.Add("limit", strconv.Itoa(query.Limit))
	if query.SearchTerms != "" {
		params.Add("search_terms", query.SearchTerms)
	}
	params.Add("fields", strings.Join(query.Fields, ","))

	return params, nil
}

// redactRequestError tira a query string (que carrega o access_token) das falhas de transporte.
func redactRequestError(err error, safeURL, token string) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return scrubToken(err, token)
	}

	return &url.Error{
		Op:  urlErr.Op,
		URL: safeURL,
		Err: scrubToken(urlErr.Err, token),
	}
}

func scrubToken(err error, token string) error {
	if err == nil || token == "" || !strings.Contains(err.Error(), token) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), token, "[REDACTED]"))
}
