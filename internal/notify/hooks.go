package notify

import (
	"context"
	"encoding/json"

	"career-pods/internal/domain/notification"
	"career-pods/internal/repository"
	"career-pods/internal/ws"

	"github.com/google/uuid"
)

// PersistHook writes the event as a notification row so it shows up in the
// user's notification list even when they are offline.
type PersistHook struct {
	repo repository.NotificationRepository
}

func NewPersistHook(repo repository.NotificationRepository) *PersistHook {
	return &PersistHook{repo: repo}
}

func (h *PersistHook) Name() string { return "persist" }

func (h *PersistHook) Handle(ctx context.Context, evt Event) error {
	return h.repo.Create(ctx, notification.Notification{
		ID:     uuid.New(),
		UserID: evt.UserID,
		Type:   evt.Type,
		Title:  evt.Title,
		Body:   evt.Body,
	})
}

// PushHook forwards the event to the user's open websocket connections.
type PushHook struct {
	hub *ws.Hub
}

func NewPushHook(hub *ws.Hub) *PushHook {
	return &PushHook{hub: hub}
}

func (h *PushHook) Name() string { return "push" }

func (h *PushHook) Handle(ctx context.Context, evt Event) error {
	b, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	h.hub.SendToUser(evt.UserID, b)
	return nil
}
