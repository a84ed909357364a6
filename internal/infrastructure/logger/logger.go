package logger

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/reactiverse/core/internal/infrastructure/config"
)

// Logger wraps zap.SugaredLogger to provide application-specific logging
type Logger struct {
	*zap.SugaredLogger
}

// New creates a new logger instance
func New(cfg config.LoggerConfig) (*Logger, error) {
	var zapConfig zap.Config

	if cfg.Format == "json" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	switch {
	case cfg.Output == "file" && cfg.Filename != "":
		zapConfig.OutputPaths = []string{cfg.Filename}
		zapConfig.ErrorOutputPaths = []string{cfg.Filename}
	case cfg.Output == "stderr":
		zapConfig.OutputPaths = []string{"stderr"}
		zapConfig.ErrorOutputPaths = []string{"stderr"}
	default:
		zapConfig.OutputPaths = []string{"stdout"}
		zapConfig.ErrorOutputPaths = []string{"stderr"}
	}

	if cfg.Format != "json" {
		zapConfig.Development = true
		zapConfig.DisableStacktrace = false
	}

	zapLogger, err := zapConfig.Build(
		zap.AddCallerSkip(1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	return &Logger{
		SugaredLogger: zapLogger.Sugar(),
	}, nil
}

// NewNop returns a logger that discards everything. Used by tests and CLI
// commands that must keep stdout clean.
func NewNop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// WithFields returns a child logger carrying the given key/value pairs
func (l *Logger) WithFields(fields ...interface{}) *Logger {
	return &Logger{
		SugaredLogger: l.SugaredLogger.With(fields...),
	}
}

// WithError attaches err. A nil error leaves the logger unchanged.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.WithFields("error", err.Error())
}

func (l *Logger) WithRequestID(requestID string) *Logger {
	if requestID == "" {
		return l
	}
	return l.WithFields("request_id", requestID)
}

func (l *Logger) WithUserID(userID string) *Logger {
	return l.WithFields("user_id", userID)
}

// WithComponent tags entries with the subsystem that wrote them
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithFields("component", component)
}

// LogHTTPRequest writes one access log entry. 5xx responses are logged as
// errors, 4xx as warnings.
func (l *Logger) LogHTTPRequest(method, uri, userAgent, ip string, status int, latency time.Duration) {
	fields := []interface{}{
		"method", method,
		"uri", uri,
		"status", status,
		"latency_ms", float64(latency.Microseconds()) / 1000,
		"user_agent", userAgent,
		"remote_ip", ip,
	}

	switch {
	case status >= 500:
		l.Errorw("HTTP request failed", fields...)
	case status >= 400:
		l.Warnw("HTTP request rejected", fields...)
	default:
		l.Infow("HTTP request", fields...)
	}
}

// LogStoreOperation records a read or write against one of the JSON record files.
func (l *Logger) LogStoreOperation(file, op string, err error) {
	if err != nil {
		l.Errorw("Record store operation failed",
			"file", file,
			"op", op,
			"error", err.Error(),
		)
		return
	}
	l.Debugw("Record store operation", "file", file, "op", op)
}

// LogUserAction records a successful mutation performed for userID.
func (l *Logger) LogUserAction(userID, action string, metadata map[string]interface{}) {
	fields := make([]interface{}, 0, 2+2*len(metadata))
	fields = append(fields, "action", action)
	for k, v := range metadata {
		fields = append(fields, k, v)
	}

	l.WithUserID(userID).Infow("User action", fields...)
}

func (l *Logger) LogSecurityEvent(event, subject, ip string, details map[string]interface{}) {
	fields := []interface{}{
		"security_event", event,
		"subject", subject,
		"ip", ip,
	}

	for k, v := range details {
		fields = append(fields, k, v)
	}

	l.Warnw("Security event", fields...)
}

// Close flushes any buffered log entries
func (l *Logger) Close() error {
	return l.SugaredLogger.Sync()
}
