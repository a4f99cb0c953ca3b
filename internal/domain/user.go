package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Identity é o chamador autenticado; toda linha gravada pertence a ele
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Claims segue o formato dos JWTs emitidos pelo serviço de identidade (sub = id do usuário)
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}
