package repository

import (
	"context"
	"database/sql"
	"errors"

	"career-pods/internal/database"
	"career-pods/internal/domain/meeting"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrMeetingNotFound = errors.New("meeting not found")

type MeetingRepository interface {
	Create(ctx context.Context, m meeting.Meeting) (meeting.Meeting, error)
	GetByID(ctx context.Context, id uuid.UUID) (meeting.Meeting, error)
	FindUpcomingByPod(ctx context.Context, podID uuid.UUID) ([]meeting.Meeting, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type PostgresMeetingRepository struct {
	db database.DB
}

func NewPostgresMeetingRepository(db database.DB) *PostgresMeetingRepository {
	return &PostgresMeetingRepository{db: db}
}

func (r *PostgresMeetingRepository) Create(ctx context.Context, m meeting.Meeting) (meeting.Meeting, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO meetings (id, pod_id, organizer_id, title, room_name, starts_at, duration_minutes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, pod_id, organizer_id, title, room_name, starts_at, duration_minutes, created_at`,
		m.ID, m.PodID, m.OrganizerID, m.Title, m.RoomName, m.StartsAt, m.DurationMinutes,
	)
	return scanMeeting(row)
}

func (r *PostgresMeetingRepository) GetByID(ctx context.Context, id uuid.UUID) (meeting.Meeting, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, pod_id, organizer_id, title, room_name, starts_at, duration_minutes, created_at
		 FROM meetings WHERE id = $1`, id)
	m, err := scanMeeting(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return meeting.Meeting{}, ErrMeetingNotFound
		}
		return meeting.Meeting{}, err
	}
	return m, nil
}

func (r *PostgresMeetingRepository) FindUpcomingByPod(ctx context.Context, podID uuid.UUID) ([]meeting.Meeting, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, pod_id, organizer_id, title, room_name, starts_at, duration_minutes, created_at
		 FROM meetings
		 WHERE pod_id = $1 AND starts_at >= now()
		 ORDER BY starts_at ASC`,
		podID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]meeting.Meeting, 0)
	for rows.Next() {
		var m meeting.Meeting
		if err := rows.Scan(&m.ID, &m.PodID, &m.OrganizerID, &m.Title, &m.RoomName, &m.StartsAt, &m.DurationMinutes, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMeetingRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.db.Exec(ctx, `DELETE FROM meetings WHERE id = $1`, id)
}

func scanMeeting(row database.Row) (meeting.Meeting, error) {
	var m meeting.Meeting
	if err := row.Scan(&m.ID, &m.PodID, &m.OrganizerID, &m.Title, &m.RoomName, &m.StartsAt, &m.DurationMinutes, &m.CreatedAt); err != nil {
		return meeting.Meeting{}, err
	}
	return m, nil
}
