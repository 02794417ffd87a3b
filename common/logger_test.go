package common

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestSeverityString(t *testing.T) {
	tests := []struct {
		severity Severity
		expected string
	}{
		{SeverityDebug, "DEBUG"},
		{SeverityInfo, "INFO"},
		{SeverityWarning, "WARNING"},
		{SeverityError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got := tt.severity.String()
			if got != tt.expected {
				t.Errorf("Severity.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseSeverity(t *testing.T) {
	for name, want := range map[string]Severity{
		"debug":   SeverityDebug,
		"info":    SeverityInfo,
		"warning": SeverityWarning,
		"warn":    SeverityWarning,
		"error":   SeverityError,
	} {
		got, err := ParseSeverity(name)
		if err != nil || got != want {
			t.Errorf("ParseSeverity(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
	if _, err := ParseSeverity("loud"); err == nil {
		t.Error("ParseSeverity accepted an unknown level")
	}
}

// decodeLines splits JSON log output into one map per line.
func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m := map[string]interface{}{}
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("log line is not JSON: %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestZeroLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZeroLogger(&buf, SeverityDebug)

	tests := []struct {
		name     string
		severity Severity
		message  string
		level    string
	}{
		{"Debug", SeverityDebug, "debug message", "debug"},
		{"Info", SeverityInfo, "info message", "info"},
		{"Warning", SeverityWarning, "warning message", "warn"},
		{"Error", SeverityError, "error message", "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			logger.Log(tt.severity, tt.message)

			lines := decodeLines(t, &buf)
			if len(lines) != 1 {
				t.Fatalf("expected one line, got %d", len(lines))
			}
			if lines[0]["message"] != tt.message {
				t.Errorf("message = %v, want %q", lines[0]["message"], tt.message)
			}
			if lines[0]["level"] != tt.level {
				t.Errorf("level = %v, want %q", lines[0]["level"], tt.level)
			}
		})
	}
}

func TestZeroLogger_Logf(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZeroLogger(&buf, SeverityInfo)

	logger.Logf(SeverityInfo, "formatted %s %d", "test", 123)

	if !strings.Contains(buf.String(), "formatted test 123") {
		t.Errorf("Logf output should contain formatted message, got: %s", buf.String())
	}
}

func TestZeroLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZeroLogger(&buf, SeverityInfo)

	logger.Error(errors.New("test error"))
	lines := decodeLines(t, &buf)
	if len(lines) != 1 || lines[0]["error"] != "test error" {
		t.Errorf("Error output should carry the error field, got: %s", buf.String())
	}

	buf.Reset()
	logger.Error(nil)
	if buf.Len() != 0 {
		t.Errorf("Error(nil) should not log anything, got: %s", buf.String())
	}
}

func TestZeroLogger_MinLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZeroLogger(&buf, SeverityWarning)

	logger.Debug("debug message")
	logger.Info("info message")
	if buf.Len() != 0 {
		t.Errorf("Debug and Info should not be logged when minLevel is Warning, got: %s", buf.String())
	}

	logger.Warning("warning message")
	if !strings.Contains(buf.String(), "warning message") {
		t.Errorf("Warning should be logged, got: %s", buf.String())
	}
}

func TestZeroLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZeroLogger(&buf, SeverityInfo).With("buffer", 2)

	logger.Info("decoded")
	lines := decodeLines(t, &buf)
	if len(lines) != 1 || lines[0]["buffer"] != float64(2) {
		t.Errorf("child logger lost its field: %s", buf.String())
	}
}

func TestConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(&buf, SeverityInfo, true)

	logger.Warning("truncated capture?")
	out := buf.String()
	if !strings.Contains(out, "truncated capture?") || !strings.Contains(out, "WRN") {
		t.Errorf("console output = %q", out)
	}
}

func TestNoOpLogger(t *testing.T) {
	logger := NewNoOpLogger()
	if logger == nil {
		t.Fatal("NewNoOpLogger() returned nil")
	}

	// All these should do nothing and not panic
	logger.Log(SeverityInfo, "test")
	logger.Logf(SeverityInfo, "test %s", "formatted")
	logger.Error(errors.New("test error"))
	logger.Debug("debug")
	logger.Info("info")
	logger.Warning("warning")

	if _, ok := OrNoOp(nil).(*NoOpLogger); !ok {
		t.Error("OrNoOp(nil) should return a NoOpLogger")
	}
}
