package skill

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCategory is assigned when a skill is created from a free-text name
// with no explicit category.
const DefaultCategory = "technical"

type Skill struct {
	ID          uuid.UUID
	Name        string
	Category    string
	Description string
	CreatedAt   time.Time
}

// UserSkill associates a user with a catalog skill they are tracking.
// One row per (user, skill) pair.
type UserSkill struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	SkillID      uuid.UUID
	SkillName    string
	CurrentLevel int
	TargetLevel  int
	CreatedAt    time.Time
}
