package sway

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerSilentByDefault(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger returned nil")
	}
	if l.Enabled(nil, slog.LevelError) {
		t.Error("default logger enabled at Error level")
	}
}

func TestSetLoggerInstallsAndRestores(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	Logger().Warn("sway: something recoverable", "detail", 7)
	if !strings.Contains(buf.String(), "something recoverable") {
		t.Errorf("log output = %q, want the warning", buf.String())
	}

	// Nil restores the silent default instead of panicking later.
	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("Logger nil after SetLogger(nil)")
	}
	if Logger().Enabled(nil, slog.LevelError) {
		t.Error("restored default logger not silent")
	}
}
