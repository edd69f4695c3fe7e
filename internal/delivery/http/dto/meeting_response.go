package dto

import (
	"time"

	"github.com/google/uuid"
)

type MeetingResponse struct {
	ID              uuid.UUID `json:"id"`
	PodID           uuid.UUID `json:"pod_id"`
	OrganizerID     uuid.UUID `json:"organizer_id"`
	Title           string    `json:"title"`
	RoomName        string    `json:"room_name"`
	StartsAt        time.Time `json:"starts_at"`
	DurationMinutes int       `json:"duration_minutes"`
}
