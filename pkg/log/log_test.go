package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestCorrelationID(t *testing.T) {
	ctx, id := WithCorrelationID(context.Background())

	assert.NotEmpty(t, id)
	assert.Equal(t, id, GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestDevelopmentFieldFilter(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})

	l := &logger{entry: logrus.NewEntry(base)}
	l.WithFields(Fields{"run_id": "abc", "user_id": "u1", "noise": "x"}).Info("scrape")

	out := buf.String()
	assert.Contains(t, out, "run_id=abc")
	assert.Contains(t, out, "user_id=u1")
	assert.NotContains(t, out, "noise")
}

func TestProductionKeepsEveryField(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})

	l := &logger{entry: logrus.NewEntry(base)}
	l.WithField("noise", "x").Info("scrape")

	assert.Contains(t, buf.String(), "noise=x")
}

func TestForContext_IncludesRunID(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})

	ctx, correlationID := WithCorrelationID(context.Background())
	ctx = WithRunID(ctx, "run42")

	l := &logger{entry: logrus.NewEntry(base)}
	l.WithContext(ctx).Info("scrape")

	out := buf.String()
	assert.Contains(t, out, "run_id=run42")
	assert.Contains(t, out, "correlation_id="+correlationID)
}

func TestDevelopmentKeepsScrapeDiagnostics(t *testing.T) {
	t.Setenv("APP_ENV", "")

	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})

	l := &logger{entry: logrus.NewEntry(base)}
	l.WithFields(Fields{
		"date_min":   "2024-02-19",
		"date_max":   "2024-03-20",
		"ad_type":    "ALL",
		"date_range": 30,
		"received":   4,
	}).WithField("api_error", "OAuthException").Error("ads_archive")

	out := buf.String()
	for _, field := range []string{"date_min=2024-02-19", "date_max=2024-03-20", "ad_type=ALL", "date_range=30", "received=4", "api_error=OAuthException"} {
		assert.Contains(t, out, field)
	}
}
