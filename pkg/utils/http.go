package utils

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// StatusError é devolvido por MakeRequest quando a resposta não é 200
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Error on Request: %s status: %d", e.URL, e.StatusCode)
}

// MakeRequest faz um GET com os headers informados e devolve o corpo da resposta
func MakeRequest(ctx context.Context, client *http.Client, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	return io.ReadAll(resp.Body)
}
