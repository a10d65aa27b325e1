package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestSlogLogger_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewSlogLogger(Config{
		Level:  LevelDebug,
		Format: FormatText,
		Writer: &buf,
	})
	if err != nil {
		t.Fatalf("NewSlogLogger failed: %v", err)
	}
	defer l.Shutdown()

	l.Info("packing", "entries", 42)

	out := buf.String()
	if !strings.Contains(out, "packing") || !strings.Contains(out, "entries=42") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestSlogLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewSlogLogger(Config{
		Level:  LevelInfo,
		Format: FormatJSON,
		Writer: &buf,
	})
	if err != nil {
		t.Fatalf("NewSlogLogger failed: %v", err)
	}
	defer l.Shutdown()

	l.Info("signed", "apk", "out.apk")

	out := buf.String()
	if !strings.Contains(out, `"msg":"signed"`) {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestSlogLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewSlogLogger(Config{
		Level:  LevelWarn,
		Format: FormatText,
		Writer: &buf,
	})
	if err != nil {
		t.Fatalf("NewSlogLogger failed: %v", err)
	}
	defer l.Shutdown()

	l.Debug("should not appear")
	l.Info("should not appear either")
	l.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Errorf("low-level messages leaked: %s", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn message missing: %s", out)
	}
}

func TestSlogLogger_MasksSecrets(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewSlogLogger(Config{
		Level:  LevelDebug,
		Format: FormatText,
		Writer: &buf,
	})
	if err != nil {
		t.Fatalf("NewSlogLogger failed: %v", err)
	}
	defer l.Shutdown()

	l.Info("signing apk", "storepass", "test001")

	out := buf.String()
	if strings.Contains(out, "test001") {
		t.Errorf("secret leaked into log output: %s", out)
	}
}

func TestSlogLogger_With(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewSlogLogger(Config{
		Level:  LevelDebug,
		Format: FormatText,
		Writer: &buf,
	})
	if err != nil {
		t.Fatalf("NewSlogLogger failed: %v", err)
	}
	defer l.Shutdown()

	child := l.With("tool", "zipalign")
	child.Info("aligned")

	out := buf.String()
	if !strings.Contains(out, "tool=zipalign") {
		t.Errorf("child logger lost context: %s", out)
	}
}

func TestGet_Uninitialized(t *testing.T) {
	// Must not panic when Init was never called
	Get().Info("no-op")
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("DEBUG") != LevelDebug {
		t.Error("ParseLevel DEBUG failed")
	}
	if ParseLevel("warning") != LevelWarn {
		t.Error("ParseLevel warning failed")
	}
	if ParseLevel("bogus") != LevelInfo {
		t.Error("ParseLevel default failed")
	}
}
