package authenticating

import (
	"context"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-ingestion-api/internal/config"
	"github.com/vfg2006/ads-ingestion-api/internal/domain"
	"github.com/vfg2006/ads-ingestion-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type remoteUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// RemoteService pergunta ao serviço de identidade (GET /auth/v1/user) quem é o dono do token
type RemoteService struct {
	cfg    *config.Config
	client *http.Client
}

func NewRemoteService(cfg *config.Config, client *http.Client) *RemoteService {
	return &RemoteService{
		cfg:    cfg,
		client: client,
	}
}

func (s *RemoteService) ResolveIdentity(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	url := strings.TrimRight(s.cfg.Auth.URL, "/") + "/auth/v1/user"
	body, err := utils.MakeRequest(ctx, s.client, url, map[string]string{
		"apikey":        s.cfg.Auth.APIKey,
		"Authorization": "Bearer " + token,
	})
	if err != nil {
		var statusErr *utils.StatusError
		if errors.As(err, &statusErr) {
			return nil, NewAuthError(ErrInvalidToken, statusErr.Error())
		}
		logrus.WithError(err).Error("Erro ao consultar o serviço de identidade")
		return nil, NewAuthError(ErrIdentityUnavailable, err.Error())
	}

	var user remoteUser
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, NewAuthError(ErrInvalidToken, "resposta inválida do serviço de identidade")
	}

	if user.ID == "" {
		return nil, ErrMissingIdentity
	}

	return &domain.Identity{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}
