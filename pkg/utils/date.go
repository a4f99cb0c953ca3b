package utils

import (
	"time"

	"github.com/pkg/errors"
)

// layouts aceitos para ad_delivery_start_time / ad_delivery_stop_time
var timestampLayouts = []string{
	"2006-01-02T15:04:05-0700",
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// ParseTimestamp interpreta os horários devolvidos pela Ad Library
func ParseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("timestamp vazio")
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, errors.Errorf("formato de timestamp desconhecido: %q", value)
}
