package repository

import (
	"context"
	"fmt"

	"career-pods/internal/database"
	"career-pods/internal/domain/skill"

	"github.com/google/uuid"
)

type SkillRepository interface {
	GetAllSkills(ctx context.Context) ([]skill.Skill, error)
	// ResolveByName returns the skill with the given unique name, creating
	// it when absent. The DO UPDATE no-op makes the conflicting insert
	// return the existing row, so two concurrent first references to the
	// same name cannot produce duplicates.
	ResolveByName(ctx context.Context, name string) (skill.Skill, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) GetAllSkills(ctx context.Context) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, category, description, created_at FROM skills ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Description, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) ResolveByName(ctx context.Context, name string) (skill.Skill, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO skills (id, name, category, description)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id, name, category, description, created_at`,
		uuid.New(), name, skill.DefaultCategory, fmt.Sprintf("Tracked competency: %s", name),
	)

	var s skill.Skill
	if err := row.Scan(&s.ID, &s.Name, &s.Category, &s.Description, &s.CreatedAt); err != nil {
		return skill.Skill{}, err
	}
	return s, nil
}
