package dto

import "github.com/google/uuid"

type SkillResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
}

type TrackedSkillResponse struct {
	ID           uuid.UUID `json:"id"`
	SkillID      uuid.UUID `json:"skill_id"`
	SkillName    string    `json:"skill_name"`
	CurrentLevel int       `json:"current_level"`
	TargetLevel  int       `json:"target_level"`
}

type TrackSkillResponse struct {
	Skill    SkillResponse        `json:"skill"`
	Tracking TrackedSkillResponse `json:"tracking"`
	Progress ProgressResponse     `json:"progress"`
}
