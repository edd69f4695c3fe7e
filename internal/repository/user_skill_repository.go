package repository

import (
	"context"
	"database/sql"
	"errors"

	"career-pods/internal/database"
	"career-pods/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrUserSkillNotFound = errors.New("user skill not found")

type UserSkillRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]skill.UserSkill, error)
	Exists(ctx context.Context, userID, skillID uuid.UUID) (bool, error)
	CreateInTx(ctx context.Context, tx database.Tx, us skill.UserSkill) error
	Delete(ctx context.Context, userID, skillID uuid.UUID) (int64, error)
	DeleteInTx(ctx context.Context, tx database.Tx, userID, skillID uuid.UUID) (int64, error)
}

type PostgresUserSkillRepository struct {
	db database.DB
}

func NewPostgresUserSkillRepository(db database.DB) *PostgresUserSkillRepository {
	return &PostgresUserSkillRepository{db: db}
}

func (r *PostgresUserSkillRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]skill.UserSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT us.id, us.user_id, us.skill_id, s.name, us.current_level, us.target_level, us.created_at
		 FROM user_skills us
		 JOIN skills s ON s.id = us.skill_id
		 WHERE us.user_id = $1
		 ORDER BY s.name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.UserSkill, 0)
	for rows.Next() {
		var us skill.UserSkill
		if err := rows.Scan(&us.ID, &us.UserID, &us.SkillID, &us.SkillName, &us.CurrentLevel, &us.TargetLevel, &us.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, us)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserSkillRepository) Exists(ctx context.Context, userID, skillID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_skills WHERE user_id = $1 AND skill_id = $2)`,
		userID, skillID,
	)
	if err := row.Scan(&exists); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserSkillRepository) CreateInTx(ctx context.Context, tx database.Tx, us skill.UserSkill) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO user_skills (id, user_id, skill_id, current_level, target_level)
		 VALUES ($1, $2, $3, $4, $5)`,
		us.ID, us.UserID, us.SkillID, us.CurrentLevel, us.TargetLevel,
	)
	return err
}

func (r *PostgresUserSkillRepository) Delete(ctx context.Context, userID, skillID uuid.UUID) (int64, error) {
	return r.db.Exec(ctx, `DELETE FROM user_skills WHERE user_id = $1 AND skill_id = $2`, userID, skillID)
}

func (r *PostgresUserSkillRepository) DeleteInTx(ctx context.Context, tx database.Tx, userID, skillID uuid.UUID) (int64, error) {
	return tx.Exec(ctx, `DELETE FROM user_skills WHERE user_id = $1 AND skill_id = $2`, userID, skillID)
}
