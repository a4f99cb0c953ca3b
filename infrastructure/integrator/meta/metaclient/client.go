package metaclient

import (
	"context"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	metadomain "github.com/vfg2006/ads-ingestion-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-ingestion-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	GetAdsArchive(ctx context.Context, query *metadomain.AdsArchiveQuery) (*ResponseAdsArchive, error)
	HandleResponse(resp *http.Response) ([]byte, error)
}

type MetaClient struct {
	Cfg        *config.Config
	HTTPClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &MetaClient{
		Cfg: cfg,
		HTTPClient: &http.Client{
			Timeout: cfg.Meta.Timeout(),
		},
	}
}

// HandleResponse lê o corpo e converte respostas de erro da API em *metadomain.APIError
func (c *MetaClient) HandleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler resposta")
	}

	if resp.StatusCode == http.StatusOK {
		return body, nil
	}

	apiErr := &metadomain.APIError{StatusCode: resp.StatusCode}
	if errorResp, parseErr := ParseErrorResponse(body); parseErr == nil && errorResp.Error != nil {
		apiErr.Details = *errorResp.Error
	}

	return nil, apiErr
}

func ParseErrorResponse(body []byte) (*metadomain.ErrorResponse, error) {
	var errorResp metadomain.ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil {
		return nil, err
	}
	return &errorResp, nil
}
