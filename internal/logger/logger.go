package logger

import (
	"context"

	"staff-backoffice-backend/internal/identity"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

// Logger wraps logrus for structured logging with context support
type Logger struct {
	*logrus.Entry
}

// New creates a new logger
func New() *Logger {
	return &Logger{
		Entry: logrus.NewEntry(logrus.StandardLogger()),
	}
}

// Setup configures the standard logrus logger for the process
func Setup(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}

// WithContext creates a logger with caller and trace information taken from ctx
func WithContext(ctx context.Context) *Logger {
	logger := New()

	if id, ok := identity.FromContext(ctx); ok {
		logger.Entry = logger.Entry.WithFields(logrus.Fields{
			"user":      id.UserID.String(),
			"tenant_id": id.TenantID.String(),
		})
	} else {
		logger.Entry = logger.Entry.WithField("user", "anonymous")
	}

	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		logger.Entry = logger.Entry.WithField("trace_id", sc.TraceID().String())
	}

	return logger
}

// WithField adds a field to the logger
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{
		Entry: l.Entry.WithField(key, value),
	}
}

// WithFields adds multiple fields to the logger
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{
		Entry: l.Entry.WithFields(fields),
	}
}

// WithError adds an error field to the logger
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Entry: l.Entry.WithError(err),
	}
}
