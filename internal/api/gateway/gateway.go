// Package gateway traduz eventos do API Gateway (proxy) para a mesma cadeia HTTP do servidor.
package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
	"github.com/vfg2006/ads-ingestion-api/pkg/log"
)

type HandlerFunc func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

func NewHandler(h http.Handler) HandlerFunc {
	return func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		req, err := NewRequest(ctx, event)
		if err != nil {
			log.ForContext(ctx).WithError(err).Error("Evento do API Gateway inválido")
			return events.APIGatewayProxyResponse{}, err
		}

		w := newResponseWriter()
		h.ServeHTTP(w, req)

		return w.toProxyResponse(), nil
	}
}

// NewRequest monta um *http.Request equivalente ao evento recebido
func NewRequest(ctx context.Context, event events.APIGatewayProxyRequest) (*http.Request, error) {
	body := []byte(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao decodificar body base64")
		}
		body = decoded
	}

	target := url.URL{Path: event.Path, RawQuery: buildQuery(event).Encode()}
	if target.Path == "" {
		target.Path = "/"
	}

	method := event.HTTPMethod
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar requisição")
	}

	for key, values := range event.MultiValueHeaders {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	for key, value := range event.Headers {
		if req.Header.Get(key) == "" {
			req.Header.Set(key, value)
		}
	}

	req.RemoteAddr = event.RequestContext.Identity.SourceIP
	req.Host = req.Header.Get("Host")

	return req, nil
}

func buildQuery(event events.APIGatewayProxyRequest) url.Values {
	query := url.Values{}
	for key, values := range event.MultiValueQueryStringParameters {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	for key, value := range event.QueryStringParameters {
		if _, ok := query[key]; !ok {
			query.Set(key, value)
		}
	}
	return query
}

// responseWriter guarda status, headers e corpo até o fim do handler
type responseWriter struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func newResponseWriter() *responseWriter {
	return &responseWriter{header: http.Header{}}
}

func (w *responseWriter) Header() http.Header {
	return w.header
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.WriteHeader(http.StatusOK)
	}
	return w.body.Write(b)
}

func (w *responseWriter) WriteHeader(status int) {
	if w.status != 0 {
		return
	}
	w.status = status
}

func (w *responseWriter) toProxyResponse() events.APIGatewayProxyResponse {
	status := w.status
	if status == 0 {
		status = http.StatusOK
	}

	headers := make(map[string]string, len(w.header))
	for key, values := range w.header {
		headers[key] = strings.Join(values, ",")
	}

	return events.APIGatewayProxyResponse{
		StatusCode:        status,
		Headers:           headers,
		MultiValueHeaders: map[string][]string(w.header),
		Body:              w.body.String(),
	}
}
