package meeting

import (
	"time"

	"github.com/google/uuid"
)

const DefaultDurationMinutes = 30

type Meeting struct {
	ID              uuid.UUID
	PodID           uuid.UUID
	OrganizerID     uuid.UUID
	Title           string
	RoomName        string
	StartsAt        time.Time
	DurationMinutes int
	CreatedAt       time.Time
}
