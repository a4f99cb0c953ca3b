package domain

import (
	"github.com/pkg/errors"
)

// ErrorKind classifica as falhas do fluxo de ingestão
type ErrorKind string

const (
	KindAuthentication ErrorKind = "authentication"
	KindInvalidRequest ErrorKind = "invalid_request"
	KindConfiguration  ErrorKind = "configuration"
	KindUpstream       ErrorKind = "upstream"
	KindEmptyResult    ErrorKind = "empty_result"
	KindStorage        ErrorKind = "storage"
	KindUnexpected     ErrorKind = "unexpected"
)

// ScrapeError é o erro tipado propagado até a camada HTTP
type ScrapeError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func NewScrapeError(kind ErrorKind, message string, err error) *ScrapeError {
	return &ScrapeError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func (e *ScrapeError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return ""
}

func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// KindOf retorna o tipo do erro, ou KindUnexpected quando não é um ScrapeError
func KindOf(err error) ErrorKind {
	var scrapeErr *ScrapeError
	if errors.As(err, &scrapeErr) {
		return scrapeErr.Kind
	}
	return KindUnexpected
}
