package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/ads-ingestion-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const DefaultMessage = "An unexpected error occurred"

// Códigos expostos nos logs para cada tipo de falha
var errorCodes = map[domain.ErrorKind]string{
	domain.KindAuthentication: "AUTH_001",
	domain.KindInvalidRequest: "VAL_001",
	domain.KindConfiguration:  "SRV_005",
	domain.KindUpstream:       "SRV_003",
	domain.KindEmptyResult:    "SRV_006",
	domain.KindStorage:        "SRV_002",
	domain.KindUnexpected:     "SRV_001",
}

// APIError é o corpo de erro devolvido pelo endpoint de scrape
type APIError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// WriteError escreve o erro padronizado. Todas as falhas usam status 500.
func WriteError(w http.ResponseWriter, err error) {
	WriteErrorWithStatus(w, http.StatusInternalServerError, err)
}

// WriteErrorWithStatus é usado apenas fora do fluxo de scrape (ex.: rota inexistente)
func WriteErrorWithStatus(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(FromError(err))
}

// FromError cria um erro de API a partir de um erro Go
func FromError(err error) APIError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	if message == "" {
		message = DefaultMessage
	}

	return APIError{
		Success: false,
		Error:   message,
	}
}

// Code devolve o código de log correspondente ao tipo do erro
func Code(err error) string {
	return errorCodes[domain.KindOf(err)]
}
