package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"fiduciary-books/internal/config"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LogConfig{Level: "INFO", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Debug("hidden")
	logger.Info("bill created", "id", "b-1")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line (debug filtered), got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["msg"] != "bill created" || entry["id"] != "b-1" {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestNew_Invalid(t *testing.T) {
	if _, err := New(config.LogConfig{Level: "loud"}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown level")
	}
	if _, err := New(config.LogConfig{Level: "info", Format: "xml"}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestNew_Logfmt(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LogConfig{Level: "debug", Format: "logfmt"}, &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("cache miss", "view", "dashboard")
	if !strings.Contains(buf.String(), "view=dashboard") {
		t.Errorf("expected logfmt pair, got %q", buf.String())
	}
}
