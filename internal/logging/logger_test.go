package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-md2html/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"", log.WarnLevel},
		{"bogus", log.WarnLevel},
	}

	for _, tt := range tests {
		if got := logging.ParseLevel(tt.level); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestNew_WritesAtLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New(&buf, logging.LevelWarn)
	logger.Debug("hidden")
	logger.Warn("shown", logging.FieldInput, "a.md")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message written at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "input=a.md") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	logger := logging.Discard()
	ctx := logging.WithLogger(context.Background(), logger)
	if got := logging.FromContext(ctx); got != logger {
		t.Error("FromContext() did not return the stored logger")
	}
	if logging.FromContext(context.Background()) == nil {
		t.Error("FromContext() without logger returned nil")
	}
}

func TestSetDefault(t *testing.T) {
	// Not parallel: replaces the package-level logger.
	original := logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	replacement := logging.Discard()
	logging.SetDefault(replacement)
	if logging.Default() != replacement {
		t.Error("Default() did not return the replacement")
	}
}
