package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSlogJSONBackend(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "debug", Format: "json", Output: &buf})

	log.With(String("component", "planner")).Debug(context.Background(), "planned",
		Int("launches", 2), Float("total_delta_v", 12.5), Bool("pre_clustered", true),
		Duration("elapsed", time.Second), Err(errors.New("boom")))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "planned" || entry["component"] != "planner" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if entry["launches"] != float64(2) || entry["pre_clustered"] != true {
		t.Fatalf("typed fields missing: %v", entry)
	}
	if entry["error"] != "boom" {
		t.Fatalf("error field = %v", entry["error"])
	}
}

func TestSlogLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Output: &buf})
	log.Info(context.Background(), "hidden")
	log.Warn(context.Background(), "shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestZapBackend(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Backend: "zap", Level: "info", Format: "json", Output: &buf})

	log.Debug(context.Background(), "hidden")
	log.With(String("request_id", "abc")).Error(context.Background(), "failed", Err(errors.New("boom")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %q", buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["msg"] != "failed" || entry["request_id"] != "abc" || entry["error"] != "boom" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_BACKEND", "zap")
	if _, ok := NewFromEnv().(*zapLogger); !ok {
		t.Fatalf("LOG_BACKEND=zap should select the zap backend")
	}
	t.Setenv("LOG_BACKEND", "")
	if _, ok := NewFromEnv().(*slogger); !ok {
		t.Fatalf("default backend should be slog")
	}
}

func TestRequestScopedLogger(t *testing.T) {
	ctx, id := EnsureRequestID(context.Background())
	if id == "" || RequestIDFromContext(ctx) != id {
		t.Fatalf("request id not stored")
	}
	if again, same := EnsureRequestID(ctx); same != id || again != ctx {
		t.Fatalf("existing request id should be reused")
	}

	if FromContext(ctx, nil) == nil {
		t.Fatalf("FromContext must never return nil")
	}

	var buf bytes.Buffer
	base := New(Config{Format: "json", Output: &buf})
	ctx, l := WithRequestLogger(ctx, base)
	ctx = ContextWithLogger(ctx, l)
	FromContext(ctx, Noop()).Info(ctx, "hello")
	if !strings.Contains(buf.String(), id) {
		t.Fatalf("request id missing from %q", buf.String())
	}
}
