package metadomain

import "fmt"

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error *ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message      string      `json:"message"`
	Type         string      `json:"type"`
	Code         int         `json:"code"`
	ErrorSubcode int         `json:"error_subcode,omitempty"`
	FBTraceID    string      `json:"fbtrace_id"`
	ErrorData    interface{} `json:"error_data,omitempty"`
}

// APIError é devolvido quando a Ad Library responde com erro (status diferente de 200 ou objeto "error")
type APIError struct {
	StatusCode int
	Details    ErrorDetails
}

func (e *APIError) Error() string {
	if e.Details.Message == "" {
		return "Unknown error"
	}
	return e.Details.Message
}

func (e *APIError) String() string {
	return fmt.Sprintf("status=%d code=%d type=%s fbtrace_id=%s: %s",
		e.StatusCode, e.Details.Code, e.Details.Type, e.Details.FBTraceID, e.Error())
}

// IsTokenError indica erro de token inválido ou expirado (código 190)
func (e *APIError) IsTokenError() bool {
	return e.Details.Code == 190 || e.Details.Type == "OAuthException"
}
