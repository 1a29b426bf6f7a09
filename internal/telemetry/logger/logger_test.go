// Package logger provides structured logging for authgate.
package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func newBufferLogger(t *testing.T, level, format string) (Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l, err := New(Config{Level: level, Format: format, Output: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return l, &buf
}

func TestLogger_JSONOutput(t *testing.T) {
	l, buf := newBufferLogger(t, "info", "json")

	l.Info("server started", "addr", ":8080")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["msg"] != "server started" {
		t.Errorf("msg = %v, want server started", entry["msg"])
	}
	if entry["addr"] != ":8080" {
		t.Errorf("addr = %v, want :8080", entry["addr"])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	l, buf := newBufferLogger(t, "warn", "json")

	l.Debug("dropped")
	l.Info("dropped")
	l.Warn("kept")

	if strings.Contains(buf.String(), "dropped") {
		t.Error("messages below level were emitted")
	}
	if !strings.Contains(buf.String(), "kept") {
		t.Error("warn message missing")
	}
}

func TestLogger_SetLevel(t *testing.T) {
	l, buf := newBufferLogger(t, "info", "json")

	l.Debug("before")
	SetLevel("debug")
	defer SetLevel("info")
	l.Debug("after")

	if strings.Contains(buf.String(), "before") {
		t.Error("debug emitted before level change")
	}
	if !strings.Contains(buf.String(), "after") {
		t.Error("debug missing after level change")
	}
	if GetLevel() != "debug" {
		t.Errorf("GetLevel = %s, want debug", GetLevel())
	}
}

func TestLogger_TextFormat(t *testing.T) {
	l, buf := newBufferLogger(t, "info", "text")

	l.Info("hello")
	if !strings.Contains(buf.String(), "msg=hello") {
		t.Errorf("text output = %q, want msg=hello", buf.String())
	}
}

func TestLogger_With(t *testing.T) {
	l, buf := newBufferLogger(t, "info", "json")

	l.With("component", "store").Info("ready")

	if !strings.Contains(buf.String(), `"component":"store"`) {
		t.Errorf("output missing bound attribute: %s", buf.String())
	}
}

func TestL_RequestIDEnrichment(t *testing.T) {
	l, buf := newBufferLogger(t, "info", "json")

	ctx := WithLogger(context.Background(), l)
	ctx = WithRequestID(ctx, "req-01ABC")
	L(ctx).Info("handled")

	if !strings.Contains(buf.String(), `"request_id":"req-01ABC"`) {
		t.Errorf("output missing request_id: %s", buf.String())
	}
}

func TestFromContext_Fallback(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Error("FromContext returned nil without a bound logger")
	}
}
