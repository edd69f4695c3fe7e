package pod

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleLead   = "lead"
	RoleMember = "member"
)

// Pod is a peer group of students. The creator becomes the lead and is
// always a member.
type Pod struct {
	ID          uuid.UUID
	Name        string
	Description string
	LeadID      uuid.UUID
	CreatedAt   time.Time
}

type Member struct {
	PodID    uuid.UUID
	UserID   uuid.UUID
	Role     string
	JoinedAt time.Time
}
