package notification

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeBadgeEarned = "badge_earned"
	TypePodMessage  = "pod_message"
	TypeMeeting     = "meeting_scheduled"
)

type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      string
	Title     string
	Body      string
	Read      bool
	CreatedAt time.Time
}
