package logger_adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"property-service/internal/core/port"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

type fakePoster struct {
	tags     []string
	messages []map[string]interface{}
}

func (f *fakePoster) Post(tag string, message interface{}) error {
	f.tags = append(f.tags, tag)
	f.messages = append(f.messages, message.(map[string]interface{}))
	return nil
}

func (f *fakePoster) Close() error { return nil }

func TestSlogAdapterWritesFieldsAndError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, IsJSON: true, Level: slog.LevelDebug})

	logger.WithFields(port.Fields{"trace_id": "abc"}).Error("boom", errors.New("store down"), port.Fields{"op": "find"})

	var record map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if record["msg"] != "boom" || record["trace_id"] != "abc" || record["op"] != "find" || record["error"] != "store down" {
		t.Fatalf("unexpected record: %v", record)
	}
}

func TestSlogAdapterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelWarn})

	logger.Info("hidden", nil)
	logger.Debug("hidden", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}
	logger.Warn("shown", nil)
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected warn record, got %q", buf.String())
	}
}

func TestFluentAdapterTagsAndNormalizesValues(t *testing.T) {
	poster := &fakePoster{}
	logger, err := NewFluentLoggerAdapter(poster, "property-service", slog.LevelInfo)
	if err != nil {
		t.Fatalf("NewFluentLoggerAdapter: %v", err)
	}

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	logger.WithFields(port.Fields{"price": decimal.RequireFromString("12.50")}).Info("saved", port.Fields{"at": at})
	logger.Debug("dropped", nil)

	if len(poster.messages) != 1 {
		t.Fatalf("expected 1 posted record, got %d", len(poster.messages))
	}
	if poster.tags[0] != "property-service.info" {
		t.Fatalf("unexpected tag %q", poster.tags[0])
	}
	msg := poster.messages[0]
	if msg["price"] != "12.5" {
		t.Fatalf("price not stringified: %#v", msg["price"])
	}
	if msg["at"] != "2024-01-02T03:04:05Z" {
		t.Fatalf("time not formatted: %#v", msg["at"])
	}
	if msg["message"] != "saved" || msg["level"] != "info" {
		t.Fatalf("unexpected record: %v", msg)
	}
}

func TestNewFluentLoggerAdapterRejectsNilClient(t *testing.T) {
	if _, err := NewFluentLoggerAdapter(nil, "svc", nil); err == nil {
		t.Fatal("expected error for nil client")
	}
}

func TestMultiloggerFansOut(t *testing.T) {
	first, second := &fakePoster{}, &fakePoster{}
	a, _ := NewFluentLoggerAdapter(first, "a", nil)
	b, _ := NewFluentLoggerAdapter(second, "b", nil)

	logger, err := NewMultiloggerAdapter(a, nil, b)
	if err != nil {
		t.Fatalf("NewMultiloggerAdapter: %v", err)
	}
	logger.WithFields(port.Fields{"k": "v"}).Warn("hello", nil)

	for name, p := range map[string]*fakePoster{"first": first, "second": second} {
		if len(p.messages) != 1 || p.messages[0]["k"] != "v" {
			t.Fatalf("%s logger did not receive enriched record: %v", name, p.messages)
		}
	}
}

func TestMultiloggerRequiresLogger(t *testing.T) {
	if _, err := NewMultiloggerAdapter(nil); err == nil {
		t.Fatal("expected error without loggers")
	}
}
