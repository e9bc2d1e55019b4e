package logger

import "testing"

func TestNewLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "warning", "error", "bogus", ""} {
		if l := New(Config{Level: level, Format: "text"}); l == nil {
			t.Fatalf("New returned nil for level %q", level)
		}
	}
}

// The package-level helpers must be usable before Init runs.
func TestGlobalsBeforeInit(t *testing.T) {
	if defaultLogger == nil {
		t.Fatal("default logger not initialized")
	}
	if l := WithField("k", "v"); l == nil {
		t.Fatal("WithField returned nil")
	}
	if l := WithFields(map[string]interface{}{"a": 1, "b": 2}); l == nil {
		t.Fatal("WithFields returned nil")
	}
}
