package seeder

import (
	"context"
	"fmt"

	"career-pods/internal/database"
)

// SkillsSeeder preloads the global catalog with the competencies the career
// advisors reference most. User-created skills land next to these via the
// same unique name.
type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "category", "description", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	items := []struct {
		Name     string
		Category string
	}{
		{Name: "Public Speaking", Category: "communication"},
		{Name: "Technical Writing", Category: "communication"},
		{Name: "Go", Category: "technical"},
		{Name: "Python", Category: "technical"},
		{Name: "SQL", Category: "technical"},
		{Name: "Data Analysis", Category: "technical"},
		{Name: "Project Management", Category: "leadership"},
		{Name: "Mentoring", Category: "leadership"},
		{Name: "Interviewing", Category: "career"},
		{Name: "Resume Writing", Category: "career"},
		{Name: "Networking", Category: "career"},
	}

	for _, it := range items {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO skills (id, name, category, description)
			 VALUES (gen_random_uuid(), $1, $2, $3)
			 ON CONFLICT (name) DO NOTHING`,
			it.Name,
			it.Category,
			fmt.Sprintf("Tracked competency: %s", it.Name),
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
