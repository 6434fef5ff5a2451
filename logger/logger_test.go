package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(Config{Level: "warn"}, &buf)
	Warning(l).Warn("element does not fit")
	Progress(l).Info("discarded")
	_ = l.Sync()

	out := buf.String()
	if !strings.Contains(out, "boxlayout.warning") || !strings.Contains(out, "element does not fit") {
		t.Fatalf("unexpected output %q", out)
	}
	if strings.Contains(out, "discarded") {
		t.Fatalf("info entry should be filtered: %q", out)
	}
}

func TestLogFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "layout.log")
	var buf bytes.Buffer
	l := NewWithWriter(Config{Level: "debug", Format: "json", LogFile: file, MaxSize: 1}, &buf)
	l.Info("page done")
	_ = l.Sync()

	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), `"msg":"page done"`) {
		t.Fatalf("unexpected file content %q", content)
	}
}

func TestInvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(Config{Level: "nonsense"}, &buf)
	l.Debug("hidden")
	l.Info("shown")
	_ = l.Sync()
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected info level fallback, got %q", buf.String())
	}
}
