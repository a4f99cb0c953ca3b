package utils

import (
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	runIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	runIDSize     = 12
)

// NewRunID gera o id curto de uma execução de scrape, usado para agrupar os logs.
// Se o gerador falhar cai para um uuid, que é mais longo mas serve igual.
func NewRunID() string {
	id, err := gonanoid.Generate(runIDAlphabet, runIDSize)
	if err != nil {
		return uuid.NewString()
	}
	return id
}
