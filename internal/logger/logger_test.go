package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

// captureJSON points the logger at a buffer for the duration of the test.
func captureJSON(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := output
	output = &buf
	t.Cleanup(func() {
		output = old
		Init()
	})
	t.Setenv("LOG_LEVEL", level)
	t.Setenv("LOG_PRETTY", "false")
	Init()
	return &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec); err != nil {
		t.Fatalf("log line is not json: %v (%q)", err, buf.String())
	}
	return rec
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"DEBUG":   zerolog.DebugLevel,
		"warn":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"ERR":     zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q)=%v, want %v", in, got, want)
		}
	}
}

func TestGetenv(t *testing.T) {
	t.Setenv("STOCK_MONITOR_TEST_VAR", "val")
	if v := getenv("STOCK_MONITOR_TEST_VAR", "def"); v != "val" {
		t.Fatalf("getenv returned %q, want 'val'", v)
	}
	if v := getenv("STOCK_MONITOR_TEST_UNSET", "def"); v != "def" {
		t.Fatalf("getenv returned %q, want 'def'", v)
	}
}

func TestInit_TagsEveryRecordWithService(t *testing.T) {
	buf := captureJSON(t, "info")

	L().Info().Str("symbol", "MSFT").Msg("fetched")

	rec := decodeLine(t, buf)
	if rec["service"] != serviceName {
		t.Fatalf("service=%v, want %s", rec["service"], serviceName)
	}
	if rec["symbol"] != "MSFT" || rec["message"] != "fetched" {
		t.Fatalf("unexpected record %v", rec)
	}
	if _, ok := rec["time"]; !ok {
		t.Fatalf("record has no timestamp: %v", rec)
	}
}

func TestInit_LevelFiltersRecords(t *testing.T) {
	buf := captureJSON(t, "warn")

	L().Info().Msg("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info record written at warn level: %q", buf.String())
	}
	L().Warn().Msg("kept")
	if rec := decodeLine(t, buf); rec["level"] != "warn" {
		t.Fatalf("level=%v", rec["level"])
	}
}

func TestL_InitializesLazily(t *testing.T) {
	base = zerolog.Logger{}
	lg := L()
	if lg == nil {
		t.Fatalf("logger is nil")
	}
	if lg.GetLevel() == zerolog.NoLevel {
		t.Fatalf("logger level not initialized")
	}
}

func TestFromContext(t *testing.T) {
	buf := captureJSON(t, "debug")

	if rid := RequestID(context.Background()); rid != "" {
		t.Fatalf("expected empty request id, got %q", rid)
	}
	if FromContext(context.Background()) != L() {
		t.Fatalf("expected global logger for context without request id")
	}

	ctx := WithRequestID(context.Background(), "abc-123")
	if rid := RequestID(ctx); rid != "abc-123" {
		t.Fatalf("RequestID=%q, want abc-123", rid)
	}
	FromContext(ctx).Debug().Msg("watch list replaced")

	rec := decodeLine(t, buf)
	if rec["request_id"] != "abc-123" {
		t.Fatalf("request_id=%v, want abc-123", rec["request_id"])
	}
}
