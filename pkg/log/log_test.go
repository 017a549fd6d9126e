package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()

	buf := &bytes.Buffer{}
	previous := logrus.StandardLogger().Out
	logrus.SetOutput(buf)
	t.Cleanup(func() { logrus.SetOutput(previous) })

	return buf
}

func TestCorrelationID(t *testing.T) {
	ctx, id := WithCorrelationID(context.Background())

	require.NotEmpty(t, id)
	assert.Equal(t, id, GetCorrelationID(ctx))
	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestWithFields_DevelopmentFilter(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	SetupTestLogger()
	buf := captureOutput(t)

	L.WithFields(Fields{
		"user_id":    7,
		"sale_id":    "abc123",
		"user_agent": "curl",
		"query":      "page",
	}).Info("venda registrada")

	out := buf.String()
	assert.Contains(t, out, "user_id=7")
	assert.Contains(t, out, "sale_id=abc123")
	assert.NotContains(t, out, "query=")
}

func TestWithFields_ProductionKeepsAll(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	SetupTestLogger()
	buf := captureOutput(t)

	L.WithField("query", "page").Info("requisição")

	assert.Contains(t, buf.String(), "query=page")
}

func TestForContext(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	SetupTestLogger()
	buf := captureOutput(t)

	ctx, id := WithCorrelationID(context.Background())
	ForContext(ctx).Info("com contexto")

	assert.Contains(t, buf.String(), id)
}

func TestSetup_InvalidLevel(t *testing.T) {
	Setup("barulhento")
	t.Cleanup(SetupTestLogger)

	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}
