package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vfg2006/ads-ingestion-api/internal/domain"
	"github.com/vfg2006/ads-ingestion-api/internal/usecases/authenticating"
	"github.com/vfg2006/ads-ingestion-api/pkg/apiErrors"
	"github.com/vfg2006/ads-ingestion-api/pkg/log"
)

type contextKey string

const (
	ContextKeyUser contextKey = "user"
)

const (
	msgMissingAuthorization  = "Authorization header is required"
	msgInvalidAuthentication = "Invalid authentication"
)

// rotas que não exigem autenticação
var publicPaths = map[string]bool{
	"/healthcheck": true,
	"/metrics":     true,
}

func AuthMiddleware(authService authenticating.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apiErrors.WriteError(w, domain.NewScrapeError(domain.KindAuthentication, msgMissingAuthorization, nil))
				return
			}

			tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

			identity, err := authService.ResolveIdentity(r.Context(), tokenString)
			if err != nil || identity == nil || identity.ID == "" {
				log.ForContext(r.Context()).WithError(err).Warn("Falha ao autenticar requisição")
				apiErrors.WriteError(w, domain.NewScrapeError(domain.KindAuthentication, msgInvalidAuthentication, err))
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext devolve o usuário autenticado pelo AuthMiddleware
func IdentityFromContext(ctx context.Context) (*domain.Identity, bool) {
	identity, ok := ctx.Value(ContextKeyUser).(*domain.Identity)
	return identity, ok && identity != nil
}
