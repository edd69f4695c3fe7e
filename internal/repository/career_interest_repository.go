package repository

import (
	"context"

	"career-pods/internal/database"
	"career-pods/internal/domain/interest"

	"github.com/google/uuid"
)

type CareerInterestRepository interface {
	Create(ctx context.Context, ci interest.CareerInterest) (interest.CareerInterest, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]interest.CareerInterest, error)
}

type PostgresCareerInterestRepository struct {
	db database.DB
}

func NewPostgresCareerInterestRepository(db database.DB) *PostgresCareerInterestRepository {
	return &PostgresCareerInterestRepository{db: db}
}

func (r *PostgresCareerInterestRepository) Create(ctx context.Context, ci interest.CareerInterest) (interest.CareerInterest, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO career_interests (id, user_id, industry, role_goal, description, priority)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, user_id, industry, role_goal, description, priority, created_at`,
		ci.ID, ci.UserID, ci.Industry, ci.RoleGoal, ci.Description, ci.Priority,
	)
	return scanCareerInterest(row)
}

func (r *PostgresCareerInterestRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]interest.CareerInterest, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, industry, role_goal, description, priority, created_at
		 FROM career_interests
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]interest.CareerInterest, 0)
	for rows.Next() {
		var ci interest.CareerInterest
		if err := rows.Scan(&ci.ID, &ci.UserID, &ci.Industry, &ci.RoleGoal, &ci.Description, &ci.Priority, &ci.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ci)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanCareerInterest(row database.Row) (interest.CareerInterest, error) {
	var ci interest.CareerInterest
	if err := row.Scan(&ci.ID, &ci.UserID, &ci.Industry, &ci.RoleGoal, &ci.Description, &ci.Priority, &ci.CreatedAt); err != nil {
		return interest.CareerInterest{}, err
	}
	return ci, nil
}
