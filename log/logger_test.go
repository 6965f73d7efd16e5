package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestLogger_TagsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Component: "ledger",
		Handler:   slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	})

	logger.InfoContext(context.Background(), "state saved", "key", "accounts")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if record["component"] != "ledger" {
		t.Errorf("component = %v, want ledger", record["component"])
	}
	if record["msg"] != "state saved" {
		t.Errorf("msg = %v, want state saved", record["msg"])
	}
	if record["key"] != "accounts" {
		t.Errorf("key = %v, want accounts", record["key"])
	}
}

func TestLogger_HandlerLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Component: "ledger",
		Handler:   slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}),
	})

	logger.DebugContext(context.Background(), "transaction added")
	if buf.Len() != 0 {
		t.Errorf("debug record emitted below handler level: %s", buf.String())
	}

	logger.ErrorContext(context.Background(), "state save failed")
	if buf.Len() == 0 {
		t.Error("error record suppressed")
	}
}
