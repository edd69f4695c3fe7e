package dto

import (
	"time"

	"github.com/google/uuid"
)

type ProgressResponse struct {
	ID           uuid.UUID  `json:"id"`
	SkillID      uuid.UUID  `json:"skill_id"`
	CurrentLevel int        `json:"current_level"`
	TargetLevel  int        `json:"target_level"`
	Notes        string     `json:"notes"`
	AchievedAt   *time.Time `json:"achieved_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type BadgeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type SummaryResponse struct {
	CompletionPercentage int            `json:"completion_percentage"`
	Badge                *BadgeResponse `json:"badge"`
}

type UpsertProgressResponse struct {
	Progress ProgressResponse `json:"progress"`
	Summary  SummaryResponse  `json:"summary"`
}

type ProgressOverviewResponse struct {
	Records   []ProgressResponse       `json:"records"`
	Skills    []TrackedSkillResponse   `json:"skills"`
	Interests []CareerInterestResponse `json:"interests"`
	Summary   SummaryResponse          `json:"summary"`
}
