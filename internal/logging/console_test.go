package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"ERROR", log.ErrorLevel},
		{"", log.WarnLevel},
		{"bogus", log.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsole(&buf, ConsoleOptions{Level: "warn"})

	logger.Debug("hidden")
	logger.Info("also hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug/info output should be suppressed at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn output missing: %q", out)
	}
}

func TestNewConsoleJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsole(&buf, ConsoleOptions{Level: "info", Format: "json"})

	logger.Info("structured message", "id", 7)

	if !strings.Contains(buf.String(), `"id":7`) && !strings.Contains(buf.String(), `"id": 7`) {
		t.Errorf("json output missing field: %q", buf.String())
	}
}
