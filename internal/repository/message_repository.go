package repository

import (
	"context"

	"career-pods/internal/database"
	"career-pods/internal/domain/message"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, m message.Message) (message.Message, error)
	ListByPod(ctx context.Context, podID uuid.UUID, limit, offset int) ([]message.Message, error)
}

type PostgresMessageRepository struct {
	db database.DB
}

func NewPostgresMessageRepository(db database.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m message.Message) (message.Message, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO messages (id, pod_id, sender_id, body)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, pod_id, sender_id, body, created_at`,
		m.ID, m.PodID, m.SenderID, m.Body,
	)

	var created message.Message
	if err := row.Scan(&created.ID, &created.PodID, &created.SenderID, &created.Body, &created.CreatedAt); err != nil {
		return message.Message{}, err
	}
	return created, nil
}

func (r *PostgresMessageRepository) ListByPod(ctx context.Context, podID uuid.UUID, limit, offset int) ([]message.Message, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, pod_id, sender_id, body, created_at
		 FROM messages
		 WHERE pod_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		podID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]message.Message, 0)
	for rows.Next() {
		var m message.Message
		if err := rows.Scan(&m.ID, &m.PodID, &m.SenderID, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
