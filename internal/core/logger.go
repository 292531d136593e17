package core

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/go-chi/chi/v5/middleware"
)

// Logger provides enhanced logging capabilities for FAQ Studio
type Logger struct {
	*slog.Logger
	mu       *sync.Mutex
	features map[string]*slog.Logger
}

// NewLogger creates a new logger instance writing text records to stdout
func NewLogger(level slog.Level) *Logger {
	return NewLoggerWithWriter(os.Stdout, level)
}

// NewLoggerWithWriter creates a logger writing to w
func NewLoggerWithWriter(w io.Writer, level slog.Level) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	return &Logger{
		Logger:   slog.New(handler),
		mu:       &sync.Mutex{},
		features: make(map[string]*slog.Logger),
	}
}

// ForFeature returns a logger specific to a feature
func (l *Logger) ForFeature(featureName string) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	featureLogger, exists := l.features[featureName]
	if !exists {
		featureLogger = l.Logger.With("feature", featureName)
		l.features[featureName] = featureLogger
	}

	return &Logger{
		Logger:   featureLogger,
		mu:       l.mu,
		features: l.features,
	}
}

// WithContext returns a logger carrying the request ID set by chi's RequestID middleware
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}

	if requestID := middleware.GetReqID(ctx); requestID != "" {
		return &Logger{
			Logger:   l.Logger.With("request_id", requestID),
			mu:       l.mu,
			features: l.features,
		}
	}

	return l
}

// LogFeatureEvent logs a feature-specific event
func (l *Logger) LogFeatureEvent(featureName, event string, attrs ...any) {
	featureLogger := l.ForFeature(featureName)
	featureLogger.Info("Feature event", append([]any{"event", event}, attrs...)...)
}

// LogFeatureError logs a feature-specific error
func (l *Logger) LogFeatureError(featureName, message string, err error, attrs ...any) {
	featureLogger := l.ForFeature(featureName)
	allAttrs := append([]any{"error", err}, attrs...)
	featureLogger.Error(message, allAttrs...)
}
