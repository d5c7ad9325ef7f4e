package redis

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/yungbote/patchbridge-backend/internal/platform/logger"
)

func TestEncodeDecodeMessage(t *testing.T) {
	in := ChangeMessage{
		Resource: "author",
		ID:       1,
		Patch:    json.RawMessage(`[{"op":"replace","path":"/name","value":"X"}]`),
		TraceID:  "abc",
	}
	raw, err := encodeMessage(in)
	if err != nil {
		t.Fatalf("encodeMessage: %v", err)
	}
	out, err := decodeMessage(raw)
	if err != nil {
		t.Fatalf("decodeMessage: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("round trip (-want +got):\n%s", diff)
	}
}

func TestEncodeMessageDefaultsPatch(t *testing.T) {
	raw, err := encodeMessage(ChangeMessage{Resource: "book", ID: 2})
	if err != nil {
		t.Fatalf("encodeMessage: %v", err)
	}
	want := `{"resource":"book","id":2,"patch":[]}`
	if string(raw) != want {
		t.Fatalf("want=%s got=%s", want, raw)
	}
}

func TestDecodeMessageRejectsGarbage(t *testing.T) {
	if _, err := decodeMessage([]byte("not json")); err == nil {
		t.Fatalf("expected json error")
	}
	if _, err := decodeMessage([]byte(`{"id":1}`)); err == nil {
		t.Fatalf("expected error for missing resource")
	}
}

func TestNilBusIsSafe(t *testing.T) {
	var b *changeBus
	if err := b.Publish(context.Background(), ChangeMessage{Resource: "author"}); err == nil {
		t.Fatalf("expected error from nil bus")
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close on nil bus: %v", err)
	}
}

func TestNewChangeBusValidatesInput(t *testing.T) {
	if _, err := NewChangeBus(nil, Config{Addr: "localhost:6379"}); err == nil {
		t.Fatalf("expected error without logger")
	}
	if _, err := NewChangeBus(logger.NewNop(), Config{}); err == nil {
		t.Fatalf("expected error without addr")
	}
}

func TestChangeBusPublishSubscribe(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis integration tests")
	}
	bus, err := NewChangeBus(logger.NewNop(), Config{Addr: addr, Channel: "patch-events-test"})
	if err != nil {
		t.Fatalf("NewChangeBus: %v", err)
	}
	t.Cleanup(func() { _ = bus.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	got := make(chan ChangeMessage, 1)
	if err := bus.StartForwarder(ctx, func(m ChangeMessage) { got <- m }); err != nil {
		t.Fatalf("StartForwarder: %v", err)
	}
	want := ChangeMessage{Resource: "book", ID: 7, Patch: json.RawMessage(`[]`)}
	if err := bus.Publish(ctx, want); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	select {
	case m := <-got:
		if diff := cmp.Diff(want, m); diff != "" {
			t.Fatalf("message (-want +got):\n%s", diff)
		}
	case <-ctx.Done():
		t.Fatalf("timed out waiting for message")
	}
}
