package usecase

import (
	"context"
	"errors"

	"career-pods/internal/domain/notification"
	"career-pods/internal/repository"

	"github.com/google/uuid"
)

var ErrNotificationNotFound = errors.New("notification not found")

const defaultNotificationLimit = 50

type NotificationUsecase interface {
	ListNotifications(ctx context.Context, userID uuid.UUID, limit int) ([]notification.Notification, error)
	MarkNotificationRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

type Notifications struct {
	repo repository.NotificationRepository
}

func NewNotificationUsecase(repo repository.NotificationRepository) *Notifications {
	return &Notifications{repo: repo}
}

func (u *Notifications) ListNotifications(ctx context.Context, userID uuid.UUID, limit int) ([]notification.Notification, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	if limit <= 0 {
		limit = defaultNotificationLimit
	}

	items, err := u.repo.FindByUserID(ctx, userID, limit)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

// MarkNotificationRead scopes the update to the owner so a user cannot
// flip another user's notifications.
func (u *Notifications) MarkNotificationRead(ctx context.Context, id, userID uuid.UUID) error {
	if id == uuid.Nil || userID == uuid.Nil {
		return ErrInvalidInput
	}

	affected, err := u.repo.MarkRead(ctx, id, userID)
	if err != nil {
		return ErrInternal
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (u *Notifications) MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, ErrInvalidInput
	}

	affected, err := u.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, ErrInternal
	}
	return affected, nil
}
