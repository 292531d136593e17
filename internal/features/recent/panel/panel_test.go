package panel

import (
	"io"
	"log/slog"
	"testing"

	"faq-studio/internal/core"
)

func testLogger(t *testing.T) *core.Logger {
	t.Helper()
	return core.NewLoggerWithWriter(io.Discard, slog.LevelError)
}

func int64Ptr(v int64) *int64 {
	return &v
}
