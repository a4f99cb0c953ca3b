package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const healthcheckTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthcheckResponse struct {
	Status   string `json:"status"`
	Time     string `json:"time"`
	Database string `json:"database,omitempty"`
}

// HealthcheckHandler responde 503 quando o banco não responde ao ping; sem pinger só informa o horário
func HealthcheckHandler(pinger Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := HealthcheckResponse{
			Status: "ok",
			Time:   time.Now().UTC().Format(time.RFC3339),
		}
		status := http.StatusOK

		if pinger != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthcheckTimeout)
			defer cancel()

			resp.Database = "ok"
			if err := pinger.Ping(ctx); err != nil {
				logrus.WithError(err).Warn("healthcheck: banco indisponível")
				resp.Status = "degraded"
				resp.Database = "unavailable"
				status = http.StatusServiceUnavailable
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logrus.WithError(err).Warn("error responding to healthcheck")
		}
	})
}
