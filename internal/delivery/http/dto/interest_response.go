package dto

import (
	"time"

	"github.com/google/uuid"
)

type CareerInterestResponse struct {
	ID          uuid.UUID `json:"id"`
	Industry    string    `json:"industry"`
	RoleGoal    string    `json:"role_goal"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
}
