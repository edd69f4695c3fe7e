// Package notify implements the post-commit side effects of state changes:
// once a primary write has committed, the emitter runs an ordered list of
// hooks (persist a notification row, push over websocket). Each hook fails
// independently and is only logged; a hook error never propagates to the
// caller and never rolls back the primary change.
package notify

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

type Event struct {
	UserID uuid.UUID `json:"user_id"`
	Type   string    `json:"type"`
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	At     time.Time `json:"at"`
}

type Hook interface {
	Name() string
	Handle(ctx context.Context, evt Event) error
}

type Emitter struct {
	hooks  []Hook
	logger *log.Logger
}

func NewEmitter(logger *log.Logger, hooks ...Hook) *Emitter {
	if logger == nil {
		logger = log.Default()
	}
	return &Emitter{hooks: hooks, logger: logger}
}

// Emit runs every hook in order. Hooks after a failing one still run.
func (e *Emitter) Emit(ctx context.Context, evt Event) {
	if e == nil {
		return
	}
	if evt.At.IsZero() {
		evt.At = time.Now().UTC()
	}
	for _, h := range e.hooks {
		if h == nil {
			continue
		}
		if err := h.Handle(ctx, evt); err != nil {
			e.logger.Printf("notify hook failed | hook=%s type=%s user=%s err=%v", h.Name(), evt.Type, evt.UserID, err)
		}
	}
}
