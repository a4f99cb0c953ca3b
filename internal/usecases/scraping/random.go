package scraping

import "math/rand"

// Randomizer é a fonte de aleatoriedade das métricas sintéticas; *rand.Rand satisfaz a interface
type Randomizer interface {
	Intn(n int) int
	Float64() float64
}

// globalRandomizer usa as funções de pacote de math/rand, seguras para uso concorrente
type globalRandomizer struct{}

func (globalRandomizer) Intn(n int) int   { return rand.Intn(n) }
func (globalRandomizer) Float64() float64 { return rand.Float64() }

// intBetween sorteia um inteiro em [min, max]
func intBetween(r Randomizer, min, max int) int {
	if max <= min {
		return min
	}
	return min + r.Intn(max-min+1)
}

// floatBetween sorteia um float em [min, max)
func floatBetween(r Randomizer, min, max float64) float64 {
	return min + r.Float64()*(max-min)
}
