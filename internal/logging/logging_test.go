package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestDefaultLoggerIsSilent(t *testing.T) {
	Set(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Errorf("Expected default logger to be disabled")
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	Set(slog.New(slog.NewTextHandler(&buf, nil)))
	defer Set(nil)

	Logger().Warn("layer not found", "offset", 12)
	if !strings.Contains(buf.String(), "offset=12") {
		t.Errorf("Expected record with offset attribute, got %q", buf.String())
	}
}
