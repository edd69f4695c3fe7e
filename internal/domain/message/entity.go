package message

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID        uuid.UUID
	PodID     uuid.UUID
	SenderID  uuid.UUID
	Body      string
	CreatedAt time.Time
}
