package notify

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/google/uuid"
)

type recordingHook struct {
	name   string
	err    error
	calls  int
	lastEv Event
}

func (h *recordingHook) Name() string { return h.name }

func (h *recordingHook) Handle(_ context.Context, evt Event) error {
	h.calls++
	h.lastEv = evt
	return h.err
}

func TestEmitter_RunsAllHooks(t *testing.T) {
	a := &recordingHook{name: "a"}
	b := &recordingHook{name: "b"}
	e := NewEmitter(log.New(io.Discard, "", 0), a, b)

	e.Emit(context.Background(), Event{UserID: uuid.New(), Type: "badge_earned", Title: "t"})

	if a.calls != 1 || b.calls != 1 {
		t.Fatalf("expected both hooks called once, got a=%d b=%d", a.calls, b.calls)
	}
	if a.lastEv.At.IsZero() {
		t.Fatalf("expected emit to stamp the event time")
	}
}

func TestEmitter_FailingHookDoesNotStopOthers(t *testing.T) {
	failing := &recordingHook{name: "failing", err: errors.New("boom")}
	after := &recordingHook{name: "after"}
	e := NewEmitter(log.New(io.Discard, "", 0), failing, after)

	e.Emit(context.Background(), Event{UserID: uuid.New(), Type: "pod_message"})

	if failing.calls != 1 {
		t.Fatalf("expected failing hook called, got %d", failing.calls)
	}
	if after.calls != 1 {
		t.Fatalf("expected hook after failure still called, got %d", after.calls)
	}
}

func TestEmitter_NilHookSkipped(t *testing.T) {
	h := &recordingHook{name: "h"}
	e := NewEmitter(log.New(io.Discard, "", 0), nil, h)

	e.Emit(context.Background(), Event{UserID: uuid.New(), Type: "meeting_scheduled"})

	if h.calls != 1 {
		t.Fatalf("expected hook called once, got %d", h.calls)
	}
}
