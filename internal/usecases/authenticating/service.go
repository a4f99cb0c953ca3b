package authenticating

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/ads-ingestion-api/internal/config"
	"github.com/vfg2006/ads-ingestion-api/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

// Authenticator resolve o bearer token de uma requisição para a identidade do chamador
type Authenticator interface {
	ResolveIdentity(ctx context.Context, token string) (*domain.Identity, error)
}

// NewAuthenticator escolhe o adaptador de identidade configurado em auth_mode
func NewAuthenticator(cfg *config.Config) Authenticator {
	if cfg.Auth.Mode == config.IdentityJWT {
		return NewService(cfg)
	}
	return NewRemoteService(cfg, &http.Client{Timeout: 10 * time.Second})
}

// Service valida localmente os JWTs HS256 emitidos pelo serviço de identidade
type Service struct {
	cfg *config.Config
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		cfg: cfg,
	}
}

func (s *Service) ResolveIdentity(_ context.Context, tokenString string) (*domain.Identity, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.Subject == "" {
		return nil, ErrMissingIdentity
	}

	return &domain.Identity{
		ID:    claims.Subject,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, err.Error())
		}
		return nil, NewAuthError(ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GenerateToken assina um token no mesmo formato aceito por ValidateToken (usado em ambiente local)
func GenerateToken(identity *domain.Identity, secretKey string, ttl time.Duration) (string, error) {
	claims := domain.Claims{
		Email: identity.Email,
		Role:  identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}
