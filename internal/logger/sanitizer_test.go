package logger

import (
	"strings"
	"testing"
)

func TestSanitize_SigningFlags(t *testing.T) {
	s := NewSanitizer()

	cases := []struct {
		input    string
		leaked   string
		expected string
	}{
		{"jarsigner -storepass test001 app.apk", "test001", "-storepass ***"},
		{"jarsigner -keypass hunter2 app.apk", "hunter2", "-keypass ***"},
		{"apksigner sign --ks-pass pass:test001 app.apk", "test001", "pass:***"},
		{"storepass=test001", "test001", "storepass=***"},
	}

	for _, c := range cases {
		got := s.Sanitize(c.input)
		if strings.Contains(got, c.leaked) {
			t.Errorf("Sanitize(%q) leaked secret: %s", c.input, got)
		}
		if !strings.Contains(got, c.expected) {
			t.Errorf("Sanitize(%q) = %q, expected to contain %q", c.input, got, c.expected)
		}
	}
}

func TestSanitize_HomePaths(t *testing.T) {
	s := NewSanitizer()

	got := s.Sanitize("/home/alice/keys/release.jks")
	if strings.Contains(got, "alice") {
		t.Errorf("home directory username leaked: %s", got)
	}
}

func TestSanitizeArgs_SensitiveKeys(t *testing.T) {
	s := NewSanitizer()

	args := []any{"storepass", "test001", "apk", "app.apk"}
	got := s.SanitizeArgs(args)

	if got[1] == "test001" {
		t.Errorf("storepass value not masked: %v", got[1])
	}
	if got[3] != "app.apk" {
		t.Errorf("non-sensitive value modified: %v", got[3])
	}
}

func TestSanitizeArgs_CommandLineValue(t *testing.T) {
	s := NewSanitizer()

	args := []any{"cmd", "jarsigner -storepass test001 -keypass test002 app.apk"}
	got := s.SanitizeArgs(args)

	str, ok := got[1].(string)
	if !ok {
		t.Fatalf("expected string value, got %T", got[1])
	}
	if strings.Contains(str, "test001") || strings.Contains(str, "test002") {
		t.Errorf("command line leaked secrets: %s", str)
	}
}

func TestSanitizeArgs_OddArgs(t *testing.T) {
	s := NewSanitizer()

	// Trailing key without value must not panic
	args := []any{"storepass", "x", "dangling"}
	got := s.SanitizeArgs(args)
	if len(got) != 3 {
		t.Fatalf("expected 3 args back, got %d", len(got))
	}
}

func TestAddRule(t *testing.T) {
	s := NewSanitizer()

	if err := s.AddRule(`alias=\S+`, "alias=***"); err != nil {
		t.Fatalf("AddRule failed: %v", err)
	}
	if got := s.Sanitize("alias=release"); got != "alias=***" {
		t.Errorf("custom rule not applied: %s", got)
	}

	if err := s.AddRule(`(unclosed`, "x"); err == nil {
		t.Error("Expected error for invalid pattern")
	}
}
