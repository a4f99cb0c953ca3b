package middleware

import (
	"net/http"
)

const (
	allowedOrigin  = "*"
	allowedHeaders = "authorization, x-client-info, apikey, content-type"
)

// Cors libera qualquer origem e responde o preflight (OPTIONS) com 200 e corpo vazio
func Cors() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
