package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthcheckHandler(t *testing.T) {
	tests := []struct {
		name         string
		pinger       Pinger
		wantStatus   int
		wantState    string
		wantDatabase string
	}{
		{
			name:       "without database",
			pinger:     nil,
			wantStatus: http.StatusOK,
			wantState:  "ok",
		},
		{
			name:         "database reachable",
			pinger:       pingerFunc(func(context.Context) error { return nil }),
			wantStatus:   http.StatusOK,
			wantState:    "ok",
			wantDatabase: "ok",
		},
		{
			name:         "database down",
			pinger:       pingerFunc(func(context.Context) error { return errors.New("connection refused") }),
			wantStatus:   http.StatusServiceUnavailable,
			wantState:    "degraded",
			wantDatabase: "unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HealthcheckHandler(tt.pinger).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

			var body HealthcheckResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantState, body.Status)
			assert.Equal(t, tt.wantDatabase, body.Database)
			assert.NotEmpty(t, body.Time)
		})
	}
}
