package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/tamzrod/rtk-status/internal/config"
)

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupWriter(&buf, config.LoggingConfig{Level: "info", JSON: true})

	logger.Info("test message", "component", "survey")

	var result map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("expected valid JSON, got: %s", buf.String())
	}
	if result["msg"] != "test message" {
		t.Errorf("expected msg 'test message', got %v", result["msg"])
	}
	if result["component"] != "survey" {
		t.Errorf("expected component 'survey', got %v", result["component"])
	}
}

func TestSetupText(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupWriter(&buf, config.LoggingConfig{Level: "debug"})

	logger.Debug("debug msg")

	if !strings.Contains(buf.String(), "debug msg") {
		t.Errorf("expected 'debug msg' in output, got: %s", buf.String())
	}
}

func TestSetupFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupWriter(&buf, config.LoggingConfig{Level: "warn"})

	logger.Info("quiet")

	if buf.Len() != 0 {
		t.Errorf("expected no output below warn, got: %s", buf.String())
	}
}

func TestLevel(t *testing.T) {
	if Level("trace") != slog.LevelDebug || Level("error") != slog.LevelError || Level("") != slog.LevelInfo {
		t.Errorf("level mapping wrong")
	}
}
