package repository

import (
	"context"
	"database/sql"
	"errors"

	"career-pods/internal/database"
	"career-pods/internal/domain/pod"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrPodNotFound = errors.New("pod not found")

type PodRepository interface {
	// Create inserts the pod and its lead membership in one transaction.
	Create(ctx context.Context, p pod.Pod) (pod.Pod, error)
	List(ctx context.Context) ([]pod.Pod, error)
	GetByID(ctx context.Context, id uuid.UUID) (pod.Pod, error)
	Members(ctx context.Context, podID uuid.UUID) ([]pod.Member, error)
	AddMember(ctx context.Context, m pod.Member) error
	RemoveMember(ctx context.Context, podID, userID uuid.UUID) (int64, error)
	IsMember(ctx context.Context, podID, userID uuid.UUID) (bool, error)
}

type PostgresPodRepository struct {
	db database.DB
}

func NewPostgresPodRepository(db database.DB) *PostgresPodRepository {
	return &PostgresPodRepository{db: db}
}

func (r *PostgresPodRepository) Create(ctx context.Context, p pod.Pod) (pod.Pod, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return pod.Pod{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	row := tx.QueryRow(ctx,
		`INSERT INTO pods (id, name, description, lead_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, name, description, lead_id, created_at`,
		p.ID, p.Name, p.Description, p.LeadID,
	)
	created, err := scanPod(row)
	if err != nil {
		return pod.Pod{}, err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO pod_members (pod_id, user_id, role) VALUES ($1, $2, $3)`,
		created.ID, created.LeadID, pod.RoleLead,
	)
	if err != nil {
		return pod.Pod{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return pod.Pod{}, err
	}
	return created, nil
}

func (r *PostgresPodRepository) List(ctx context.Context) ([]pod.Pod, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, lead_id, created_at FROM pods ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pod.Pod, 0)
	for rows.Next() {
		var p pod.Pod
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.LeadID, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresPodRepository) GetByID(ctx context.Context, id uuid.UUID) (pod.Pod, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, description, lead_id, created_at FROM pods WHERE id = $1`, id)
	p, err := scanPod(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return pod.Pod{}, ErrPodNotFound
		}
		return pod.Pod{}, err
	}
	return p, nil
}

func (r *PostgresPodRepository) Members(ctx context.Context, podID uuid.UUID) ([]pod.Member, error) {
	rows, err := r.db.Query(ctx,
		`SELECT pod_id, user_id, role, joined_at FROM pod_members WHERE pod_id = $1 ORDER BY joined_at ASC`,
		podID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pod.Member, 0)
	for rows.Next() {
		var m pod.Member
		if err := rows.Scan(&m.PodID, &m.UserID, &m.Role, &m.JoinedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresPodRepository) AddMember(ctx context.Context, m pod.Member) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO pod_members (pod_id, user_id, role) VALUES ($1, $2, $3)`,
		m.PodID, m.UserID, m.Role,
	)
	return err
}

func (r *PostgresPodRepository) RemoveMember(ctx context.Context, podID, userID uuid.UUID) (int64, error) {
	return r.db.Exec(ctx, `DELETE FROM pod_members WHERE pod_id = $1 AND user_id = $2`, podID, userID)
}

func (r *PostgresPodRepository) IsMember(ctx context.Context, podID, userID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM pod_members WHERE pod_id = $1 AND user_id = $2)`,
		podID, userID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanPod(row database.Row) (pod.Pod, error) {
	var p pod.Pod
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.LeadID, &p.CreatedAt); err != nil {
		return pod.Pod{}, err
	}
	return p, nil
}
