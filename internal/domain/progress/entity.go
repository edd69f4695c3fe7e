package progress

import (
	"time"

	"github.com/google/uuid"
)

// Skill levels run 1..5. Reaching MaxLevel marks the record achieved.
const (
	MinLevel = 1
	MaxLevel = 5

	DefaultTargetLevel = MaxLevel
)

// Record is the mutable per-(user, skill) tracking row. AchievedAt is set
// the first time the level reaches MaxLevel and never cleared afterwards,
// even if the level is later lowered.
type Record struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	SkillID      uuid.UUID
	CurrentLevel int
	TargetLevel  int
	Notes        string
	AchievedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r Record) Achieved() bool {
	return r.AchievedAt != nil
}

func ValidLevel(v int) bool {
	return v >= MinLevel && v <= MaxLevel
}
