package interest

import (
	"time"

	"github.com/google/uuid"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// CareerInterest is a user's stated goal. No update path; goals are
// created and listed only.
type CareerInterest struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Industry    string
	RoleGoal    string
	Description string
	Priority    Priority
	CreatedAt   time.Time
}
