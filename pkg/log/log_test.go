package log

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestConfigure(t *testing.T) {
	Configure("debug")
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	Configure("verboso")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}

func TestCorrelationID(t *testing.T) {
	assert.Empty(t, GetCorrelationID(context.Background()))

	ctx, id := WithCorrelationID(context.Background())
	assert.NotEmpty(t, id)
	assert.Equal(t, id, GetCorrelationID(ctx))
}

func TestWithFields_DevelopmentKeepsDomainFields(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	l := &logger{entry: logrus.NewEntry(logrus.StandardLogger())}
	got := l.WithFields(Fields{"run_id": "abc", "user_agent": "curl"}).(*logger)

	assert.Equal(t, "abc", got.entry.Data["run_id"])
	assert.NotContains(t, got.entry.Data, "user_agent")
	assert.Same(t, l, l.WithField("query", "x"))
}

func TestWithFields_ProductionKeepsEverything(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	l := newLogger()
	got := l.WithField("user_agent", "curl").(*logger)

	assert.Equal(t, "curl", got.entry.Data["user_agent"])
}

func TestWithContext_AddsCorrelationID(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	ctx, id := WithCorrelationID(context.Background())
	got := newLogger().WithContext(ctx).(*logger)
	assert.Equal(t, id, got.entry.Data[correlationIDField])

	l := newLogger()
	assert.Same(t, l, l.WithContext(context.Background()))
}
