package repository

import (
	"context"
	"errors"

	"career-pods/internal/database"
	"career-pods/internal/domain/progress"

	"github.com/google/uuid"
)

var ErrProgressNotFound = errors.New("progress not found")

// UpsertProgressParams carries the optional fields of a progress update.
// Nil means "leave unchanged" (or the column default on first insert).
type UpsertProgressParams struct {
	NewLevel    *int
	TargetLevel *int
	Notes       *string
}

type ProgressRepository interface {
	// Upsert creates the (user, skill) row if absent, otherwise applies a
	// partial update. Implemented as a single conditional insert so two
	// concurrent first updates cannot race into duplicate rows.
	Upsert(ctx context.Context, userID, skillID uuid.UUID, p UpsertProgressParams) (progress.Record, error)
	CreateInTx(ctx context.Context, tx database.Tx, rec progress.Record) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]progress.Record, error)
	Delete(ctx context.Context, userID, skillID uuid.UUID) (int64, error)
	DeleteInTx(ctx context.Context, tx database.Tx, userID, skillID uuid.UUID) (int64, error)
}

type PostgresProgressRepository struct {
	db database.DB
}

func NewPostgresProgressRepository(db database.DB) *PostgresProgressRepository {
	return &PostgresProgressRepository{db: db}
}

// The achieved_at CASE keeps the timestamp monotonic: an existing value is
// always preserved, and a fresh one is written only when the update
// explicitly sets the level to the maximum.
const upsertProgressSQL = `
INSERT INTO progress (id, user_id, skill_id, current_level, target_level, notes, achieved_at)
VALUES ($1, $2, $3,
        COALESCE($4::smallint, 1),
        COALESCE($5::smallint, 5),
        COALESCE($6::text, ''),
        CASE WHEN $4::smallint = 5 THEN now() END)
ON CONFLICT (user_id, skill_id) DO UPDATE SET
	current_level = COALESCE($4::smallint, progress.current_level),
	target_level  = COALESCE($5::smallint, progress.target_level),
	notes         = COALESCE($6::text, progress.notes),
	achieved_at   = CASE
		WHEN progress.achieved_at IS NOT NULL THEN progress.achieved_at
		WHEN $4::smallint = 5 THEN now()
	END,
	updated_at = now()
RETURNING id, user_id, skill_id, current_level, target_level, notes, achieved_at, created_at, updated_at`

func (r *PostgresProgressRepository) Upsert(ctx context.Context, userID, skillID uuid.UUID, p UpsertProgressParams) (progress.Record, error) {
	row := r.db.QueryRow(ctx, upsertProgressSQL, uuid.New(), userID, skillID, p.NewLevel, p.TargetLevel, p.Notes)
	return scanProgress(row)
}

func (r *PostgresProgressRepository) CreateInTx(ctx context.Context, tx database.Tx, rec progress.Record) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO progress (id, user_id, skill_id, current_level, target_level, notes, achieved_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.UserID, rec.SkillID, rec.CurrentLevel, rec.TargetLevel, rec.Notes, rec.AchievedAt,
	)
	return err
}

func (r *PostgresProgressRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]progress.Record, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, skill_id, current_level, target_level, notes, achieved_at, created_at, updated_at
		 FROM progress
		 WHERE user_id = $1
		 ORDER BY created_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]progress.Record, 0)
	for rows.Next() {
		var rec progress.Record
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.SkillID, &rec.CurrentLevel, &rec.TargetLevel, &rec.Notes, &rec.AchievedAt, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the matching row if present. Zero rows affected is not an
// error; delete is idempotent.
func (r *PostgresProgressRepository) Delete(ctx context.Context, userID, skillID uuid.UUID) (int64, error) {
	return r.db.Exec(ctx, `DELETE FROM progress WHERE user_id = $1 AND skill_id = $2`, userID, skillID)
}

func (r *PostgresProgressRepository) DeleteInTx(ctx context.Context, tx database.Tx, userID, skillID uuid.UUID) (int64, error) {
	return tx.Exec(ctx, `DELETE FROM progress WHERE user_id = $1 AND skill_id = $2`, userID, skillID)
}

func scanProgress(row database.Row) (progress.Record, error) {
	var rec progress.Record
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.SkillID, &rec.CurrentLevel, &rec.TargetLevel, &rec.Notes, &rec.AchievedAt, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return progress.Record{}, err
	}
	return rec, nil
}
