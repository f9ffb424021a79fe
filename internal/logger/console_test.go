package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsoleLoggerLevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		wantDebug bool
		wantInfo  bool
		wantError bool
	}{
		{"trace passes everything", "trace", true, true, true},
		{"info hides debug", "info", false, true, true},
		{"error hides info", "error", false, false, true},
		{"invalid level defaults to info", "bogus", false, true, true},
		{"empty level defaults to info", "", false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cl := NewConsoleLogger(&buf, tt.logLevel)

			cl.Debugf("debug-marker")
			cl.Infof("info-marker")
			cl.Errorf("error-marker")

			out := buf.String()
			if got := strings.Contains(out, "debug-marker"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out, "info-marker"); got != tt.wantInfo {
				t.Errorf("info logged = %v, want %v", got, tt.wantInfo)
			}
			if got := strings.Contains(out, "error-marker"); got != tt.wantError {
				t.Errorf("error logged = %v, want %v", got, tt.wantError)
			}
		})
	}
}

func TestConsoleLoggerTimestampPrefix(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")

	cl.Infof("hello %s", "world")

	out := buf.String()
	if !strings.HasPrefix(out, "[") {
		t.Errorf("output missing timestamp prefix: %q", out)
	}
	if !strings.Contains(out, "hello world") {
		t.Errorf("output missing formatted message: %q", out)
	}
	if !strings.Contains(out, "INFO") {
		t.Errorf("output missing level tag: %q", out)
	}
}

func TestConsoleLoggerNilWriter(t *testing.T) {
	cl := NewConsoleLogger(nil, "trace")
	// Must not panic.
	cl.Infof("dropped")
	cl.Errorf("dropped")
}

func TestDiscard(t *testing.T) {
	d := Discard()
	d.Errorf("nothing happens")
}
