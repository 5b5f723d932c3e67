package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), tt.in)
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogConfig{Level: "warn", Format: "json"})

	logger.Info("dropped")
	logger.Warn("kept", "lead_id", "LEAD_1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "LEAD_1", entry["lead_id"])
}

func TestNewLogger_TextByDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogConfig{})

	logger.Debug("dropped")
	logger.Info("hello", "provider", "grok")

	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "provider=grok")
	assert.NotContains(t, buf.String(), "dropped")
}

func TestNewMetrics_Noop(t *testing.T) {
	m, err := NewMetrics(noop.NewMeterProvider())
	require.NoError(t, err)

	ctx := context.Background()
	assert.NotPanics(t, func() {
		m.RecordRequest(ctx, "POST /api/chat", http.StatusOK, 20*time.Millisecond)
		m.RecordCalculation(ctx, "ok")
		m.RecordChatCall(ctx, "grok", errors.New("boom"))
	})
}

func TestInitMetrics_ExposesInstruments(t *testing.T) {
	provider, handler, err := InitMetrics()
	require.NoError(t, err)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	m, err := NewMetrics(provider)
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordCalculation(ctx, "ok")
	m.RecordChatCall(ctx, "openrouter", nil)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "mortgage_calculations_total")
	assert.Contains(t, body, `outcome="ok"`)
	assert.Contains(t, body, "chat_provider_calls_total")
	assert.Contains(t, body, `provider="openrouter"`)
}
