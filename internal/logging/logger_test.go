package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/eskmag/greenpulse/internal/config"
	"github.com/rs/zerolog"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("Failed to decode log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, zerolog.DebugLevel)

	logger.Info("Analysis completed",
		"dataset", "norway",
		"points", 5,
		"error", errors.New("boom"),
		"latency", 1500*time.Millisecond,
		42, "dropped")

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	e := entries[0]

	if e["level"] != "info" {
		t.Errorf("Expected level 'info', got %v", e["level"])
	}
	if e["message"] != "Analysis completed" {
		t.Errorf("Expected message 'Analysis completed', got %v", e["message"])
	}
	if e["dataset"] != "norway" {
		t.Errorf("Expected dataset 'norway', got %v", e["dataset"])
	}
	if e["points"] != float64(5) {
		t.Errorf("Expected points 5, got %v", e["points"])
	}
	if e["error"] != "boom" {
		t.Errorf("Expected error 'boom', got %v", e["error"])
	}
	if _, ok := e["latency"]; !ok {
		t.Error("Expected latency field")
	}
	if _, ok := e["time"]; !ok {
		t.Error("Expected timestamp field")
	}
}

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, zerolog.WarnLevel)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Error("shown")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0]["level"] != "warn" || entries[1]["level"] != "error" {
		t.Errorf("Unexpected levels: %v, %v", entries[0]["level"], entries[1]["level"])
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	parent := NewWithWriter(&buf, zerolog.InfoLevel)
	child := parent.With("component", "cache", "cause", errors.New("miss"))

	child.Info("child")
	parent.Info("parent")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0]["component"] != "cache" || entries[0]["cause"] != "miss" {
		t.Errorf("Child entry missing fields: %v", entries[0])
	}
	if _, ok := entries[1]["component"]; ok {
		t.Error("Parent logger must not inherit child fields")
	}
}

func TestLogger_WithContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, zerolog.InfoLevel)

	if got := logger.WithContext(context.Background()); got != logger {
		t.Error("Expected the same logger for a context without request ID")
	}

	ctx := WithRequestID(context.Background(), "req-1")
	logger.WithContext(ctx).Info("tagged")

	entries := decodeLines(t, &buf)
	if len(entries) != 1 || entries[0]["request_id"] != "req-1" {
		t.Errorf("Expected request_id 'req-1', got %v", entries)
	}
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	if FromContext(ctx) != Global() {
		t.Error("Expected global logger fallback")
	}
	if RequestIDFromContext(ctx) != "" {
		t.Error("Expected empty request ID")
	}

	logger := NewWithWriter(&bytes.Buffer{}, zerolog.InfoLevel)
	ctx = WithLogger(ctx, logger)
	if FromContext(ctx) != logger {
		t.Error("Expected stored logger")
	}
}

func TestSetGlobal(t *testing.T) {
	prev := Global()
	defer SetGlobal(prev)

	var buf bytes.Buffer
	SetGlobal(NewWithWriter(&buf, zerolog.InfoLevel))
	Info("global info")
	Warn("global warn")
	Error("global error")

	if entries := decodeLines(t, &buf); len(entries) != 3 {
		t.Errorf("Expected 3 entries, got %d", len(entries))
	}
}

func TestNewFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LoggingConfig
		wantLvl zerolog.Level
	}{
		{name: "defaults", cfg: config.LoggingConfig{}, wantLvl: zerolog.InfoLevel},
		{name: "debug json", cfg: config.LoggingConfig{Level: "debug", Format: "json"}, wantLvl: zerolog.DebugLevel},
		{name: "console stderr", cfg: config.LoggingConfig{Level: "warn", Format: "console", OutputPath: "stderr"}, wantLvl: zerolog.WarnLevel},
		{name: "unknown level", cfg: config.LoggingConfig{Level: "loud"}, wantLvl: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewFromConfig(tt.cfg)
			if err != nil {
				t.Fatalf("NewFromConfig() error = %v", err)
			}
			if got := logger.zl.GetLevel(); got != tt.wantLvl {
				t.Errorf("Expected level %v, got %v", tt.wantLvl, got)
			}
		})
	}
}

func TestNewFromConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "greenpulse.log")

	logger, err := NewFromConfig(config.LoggingConfig{Level: "info", Format: "json", OutputPath: path})
	if err != nil {
		t.Fatalf("NewFromConfig() error = %v", err)
	}
	logger.Info("to file", "dataset", "norway")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), `"dataset":"norway"`) {
		t.Errorf("Log file missing entry: %s", data)
	}
}
