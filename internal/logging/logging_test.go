package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Level = "warn"
	opts.ReportTimestamp = false
	logger, err := New(&buf, opts)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "key=value") || !strings.Contains(out, "taskmaster") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	opts := DefaultOptions()
	opts.Level = "loud"
	if _, err := New(&bytes.Buffer{}, opts); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestOpenFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "taskmaster.log")
	for _, msg := range []string{"first", "second"} {
		logger, closer, err := OpenFile(path, DefaultOptions())
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		logger.Info(msg)
		if err := closer.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(b), "first") || !strings.Contains(string(b), "second") {
		t.Fatalf("expected both runs in log, got %q", b)
	}
}
