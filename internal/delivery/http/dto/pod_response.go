package dto

import (
	"time"

	"github.com/google/uuid"
)

type PodResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	LeadID      uuid.UUID `json:"lead_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type PodMemberResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type PodDetailResponse struct {
	Pod     PodResponse         `json:"pod"`
	Members []PodMemberResponse `json:"members"`
}
