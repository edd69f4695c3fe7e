package usecase

import (
	"context"
	"strings"

	"career-pods/internal/domain/message"
	"career-pods/internal/domain/notification"
	"career-pods/internal/notify"
	"career-pods/internal/repository"

	"github.com/google/uuid"
)

const (
	defaultMessageLimit = 50
	maxMessageLimit     = 100
	maxMessageBodyLen   = 2000
)

type MessageUsecase interface {
	PostMessage(ctx context.Context, podID, senderID uuid.UUID, body string) (message.Message, error)
	ListMessages(ctx context.Context, podID, userID uuid.UUID, limit, offset int) ([]message.Message, error)
}

type Messaging struct {
	messages repository.MessageRepository
	pods     repository.PodRepository
	emitter  MilestoneEmitter
}

func NewMessageUsecase(messages repository.MessageRepository, pods repository.PodRepository, emitter MilestoneEmitter) *Messaging {
	return &Messaging{messages: messages, pods: pods, emitter: emitter}
}

func (u *Messaging) PostMessage(ctx context.Context, podID, senderID uuid.UUID, body string) (message.Message, error) {
	if podID == uuid.Nil || senderID == uuid.Nil {
		return message.Message{}, ErrInvalidInput
	}
	body = strings.TrimSpace(body)
	if body == "" || len(body) > maxMessageBodyLen {
		return message.Message{}, ErrInvalidInput
	}

	isMember, err := u.pods.IsMember(ctx, podID, senderID)
	if err != nil {
		return message.Message{}, ErrInternal
	}
	if !isMember {
		return message.Message{}, ErrNotMember
	}

	created, err := u.messages.Create(ctx, message.Message{
		ID:       uuid.New(),
		PodID:    podID,
		SenderID: senderID,
		Body:     body,
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return message.Message{}, ErrPodNotFound
		}
		return message.Message{}, ErrInternal
	}

	u.notifyMembers(ctx, created)
	return created, nil
}

func (u *Messaging) ListMessages(ctx context.Context, podID, userID uuid.UUID, limit, offset int) ([]message.Message, error) {
	if podID == uuid.Nil || userID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	if limit <= 0 {
		limit = defaultMessageLimit
	}
	if limit > maxMessageLimit {
		limit = maxMessageLimit
	}
	if offset < 0 {
		offset = 0
	}

	isMember, err := u.pods.IsMember(ctx, podID, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if !isMember {
		return nil, ErrNotMember
	}

	items, err := u.messages.ListByPod(ctx, podID, limit, offset)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Messaging) notifyMembers(ctx context.Context, m message.Message) {
	if u.emitter == nil {
		return
	}
	members, err := u.pods.Members(ctx, m.PodID)
	if err != nil {
		return
	}
	for _, member := range members {
		if member.UserID == m.SenderID {
			continue
		}
		u.emitter.Emit(ctx, notify.Event{
			UserID: member.UserID,
			Type:   notification.TypePodMessage,
			Title:  "New pod message",
			Body:   preview(m.Body),
		})
	}
}

// preview keeps push payloads small for long messages.
func preview(body string) string {
	const max = 140
	if len(body) <= max {
		return body
	}
	return body[:max] + "..."
}
