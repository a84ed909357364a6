package logger

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/reactiverse/core/internal/infrastructure/config"
)

func observed() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}

func TestLogHTTPRequest_LevelFollowsStatus(t *testing.T) {
	log, logs := observed()

	log.WithRequestID("req-1").LogHTTPRequest(http.MethodGet, "/api/v1/designs", "curl", "10.0.0.1", http.StatusOK, 1500*time.Microsecond)
	log.LogHTTPRequest(http.MethodPost, "/api/v1/designs", "curl", "10.0.0.1", http.StatusUnauthorized, time.Millisecond)
	log.WithError(errors.New("boom")).LogHTTPRequest(http.MethodGet, "/api/v1/designs", "curl", "10.0.0.1", http.StatusInternalServerError, time.Millisecond)

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, 1.5, fields["latency_ms"])
	assert.EqualValues(t, http.StatusOK, fields["status"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.NotContains(t, entries[1].ContextMap(), "request_id")

	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "boom", entries[2].ContextMap()["error"])
}

func TestWithError_NilLeavesLoggerUnchanged(t *testing.T) {
	log, logs := observed()

	log.WithError(nil).Infow("no error")

	require.Equal(t, 1, logs.Len())
	assert.NotContains(t, logs.All()[0].ContextMap(), "error")
}

func TestLogUserAction(t *testing.T) {
	log, logs := observed()

	log.WithComponent("designs").LogUserAction("user-1", "submit_design", map[string]interface{}{"design_id": "design-1"})

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "user-1", fields["user_id"])
	assert.Equal(t, "submit_design", fields["action"])
	assert.Equal(t, "design-1", fields["design_id"])
	assert.Equal(t, "designs", fields["component"])
}

func TestLogStoreOperation(t *testing.T) {
	log, logs := observed()

	log.LogStoreOperation("users.json", "load", nil)
	log.LogStoreOperation("users.json", "save", errors.New("disk full"))

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "disk full", entries[1].ContextMap()["error"])
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New(config.LoggerConfig{Level: "loud", Format: "json", Output: "stdout"})
	assert.Error(t, err)

	log, err := New(config.LoggerConfig{Level: "info", Format: "console", Output: "stderr"})
	require.NoError(t, err)
	assert.NotNil(t, log)
}
