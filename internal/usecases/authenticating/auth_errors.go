package authenticating

import (
	"errors"
	"fmt"
)

var (
	ErrMissingToken        = errors.New("token ausente")
	ErrInvalidToken        = errors.New("token inválido")
	ErrExpiredToken        = errors.New("token expirado")
	ErrMissingIdentity     = errors.New("token sem identificação de usuário")
	ErrIdentityUnavailable = errors.New("serviço de identidade indisponível")
)

// AuthError é um erro com contexto adicional para autenticação
type AuthError struct {
	Err     error  // Erro base
	Details string // Detalhes adicionais
}

func (e *AuthError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func NewAuthError(baseErr error, details string) *AuthError {
	return &AuthError{
		Err:     baseErr,
		Details: details,
	}
}
