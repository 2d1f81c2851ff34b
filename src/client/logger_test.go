package client

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLoggerSilentByDefault(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(DefaultConfig(), &buf)
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}
	logger.Warn("should not appear")
	if buf.Len() != 0 {
		t.Errorf("Expected the default config to log nothing, got %q", buf.String())
	}

	for _, level := range []string{"", "off"} {
		config := DefaultConfig()
		config.Logging.Level = level

		var buf bytes.Buffer
		logger, err := NewLogger(config, &buf)
		if err != nil {
			t.Fatalf("NewLogger(%q) failed: %v", level, err)
		}
		logger.Error("should not appear")
		if buf.Len() != 0 {
			t.Errorf("Expected no output for level %q, got %q", level, buf.String())
		}
	}
}

func TestNewLoggerLevel(t *testing.T) {
	config := DefaultConfig()
	config.Logging.Level = "warn"

	var buf bytes.Buffer
	logger, err := NewLogger(config, &buf)
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}
	logger.Debug("hidden debug")
	logger.Warn("visible warning")

	out := buf.String()
	if strings.Contains(out, "hidden debug") {
		t.Errorf("Expected debug message to be filtered at warn level, got %q", out)
	}
	if !strings.Contains(out, "visible warning") {
		t.Errorf("Expected warning in output, got %q", out)
	}
}

func TestNewLoggerDebugForcesLevel(t *testing.T) {
	config := DefaultConfig()
	config.Logging.Level = "off"
	config.Debug = true

	var buf bytes.Buffer
	logger, err := NewLogger(config, &buf)
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}
	logger.Debug("stage started")

	if !strings.Contains(buf.String(), "stage started") {
		t.Errorf("Expected debug output, got %q", buf.String())
	}
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	config := DefaultConfig()
	config.Logging.Level = "chatty"

	if _, err := NewLogger(config, &bytes.Buffer{}); err == nil {
		t.Error("Expected error for invalid level")
	}
}
