package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"countryname/pkg/config"
)

func TestInit(t *testing.T) {
	tempDir := t.TempDir()
	serverLog := filepath.Join(tempDir, "logs", "countryname.log")

	// A previous run's log must be rotated away
	if err := os.MkdirAll(filepath.Dir(serverLog), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(serverLog, []byte("previous run\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var console bytes.Buffer
	prevConsole := consoleWriter
	consoleWriter = &console
	prevDefault := slog.Default()
	t.Cleanup(func() {
		consoleWriter = prevConsole
		slog.SetDefault(prevDefault)
	})

	cfg := &config.LogConfig{
		Server: config.LogSettings{
			Path:  serverLog,
			Level: "DEBUG",
		},
	}

	cleanup, err := Init(cfg)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	slog.Info("info line")
	slog.Warn("warn line")
	cleanup()

	old, err := os.ReadFile(serverLog + ".old")
	if err != nil {
		t.Fatalf("rotated log missing: %v", err)
	}
	if string(old) != "previous run\n" {
		t.Errorf("unexpected rotated content %q", old)
	}

	content, err := os.ReadFile(serverLog)
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	if !strings.Contains(string(content), "info line") || !strings.Contains(string(content), "warn line") {
		t.Errorf("file log missing records: %q", content)
	}

	if strings.Contains(console.String(), "info line") {
		t.Error("INFO should not reach the console")
	}
	if !strings.Contains(console.String(), "warn line") {
		t.Error("WARN should reach the console")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"TRACE", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"nonsense", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
