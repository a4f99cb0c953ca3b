package domain

import (
	"fmt"
	"time"
)

const (
	SourceFacebookAdLibrary = "facebook_ad_library"
	SourceFallback          = "fallback"
)

type ScrapeRequest struct {
	DateRange *int `json:"dateRange"`
}

// DateWindow é a janela de datas (somente data, sem horário) usada como limites da consulta
type DateWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// NewDateWindow calcula a janela terminando no dia de referência (UTC) e começando days dias antes
func NewDateWindow(reference time.Time, days int) DateWindow {
	end := reference.UTC()
	start := end.AddDate(0, 0, -days)

	return DateWindow{
		Start: start.Format(time.DateOnly),
		End:   end.Format(time.DateOnly),
	}
}

type ScrapeResult struct {
	Inserted  []*Ad
	Fallback  bool
	Source    string
	DateRange DateWindow
}

func (r *ScrapeResult) Count() int {
	if r == nil {
		return 0
	}
	return len(r.Inserted)
}

// Message é o texto de resumo devolvido ao cliente
func (r *ScrapeResult) Message() string {
	if r.Fallback {
		return fmt.Sprintf("Sample Indian ads data added (%d ads)", r.Count())
	}
	return fmt.Sprintf("Successfully scraped %d real Facebook ads from India", r.Count())
}
