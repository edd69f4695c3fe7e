package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"career-pods/internal/domain/meeting"
	"career-pods/internal/domain/notification"
	"career-pods/internal/notify"
	"career-pods/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrMeetingNotFound = errors.New("meeting not found")
	ErrMeetingInPast   = errors.New("meeting starts in the past")
)

type ScheduleMeetingInput struct {
	Title           string
	StartsAt        time.Time
	DurationMinutes int
}

type MeetingUsecase interface {
	ScheduleMeeting(ctx context.Context, podID, organizerID uuid.UUID, in ScheduleMeetingInput) (meeting.Meeting, error)
	ListUpcoming(ctx context.Context, podID, userID uuid.UUID) ([]meeting.Meeting, error)
	CancelMeeting(ctx context.Context, meetingID, userID uuid.UUID) error
}

type Meeting struct {
	meetings repository.MeetingRepository
	pods     repository.PodRepository
	emitter  MilestoneEmitter
	now      func() time.Time
}

func NewMeetingUsecase(meetings repository.MeetingRepository, pods repository.PodRepository, emitter MilestoneEmitter) *Meeting {
	return &Meeting{meetings: meetings, pods: pods, emitter: emitter, now: time.Now}
}

func (u *Meeting) ScheduleMeeting(ctx context.Context, podID, organizerID uuid.UUID, in ScheduleMeetingInput) (meeting.Meeting, error) {
	if podID == uuid.Nil || organizerID == uuid.Nil {
		return meeting.Meeting{}, ErrInvalidInput
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return meeting.Meeting{}, ErrInvalidInput
	}
	if in.StartsAt.Before(u.now()) {
		return meeting.Meeting{}, ErrMeetingInPast
	}

	duration := in.DurationMinutes
	if duration <= 0 {
		duration = meeting.DefaultDurationMinutes
	}

	isMember, err := u.pods.IsMember(ctx, podID, organizerID)
	if err != nil {
		return meeting.Meeting{}, ErrInternal
	}
	if !isMember {
		return meeting.Meeting{}, ErrNotMember
	}

	id := uuid.New()
	created, err := u.meetings.Create(ctx, meeting.Meeting{
		ID:              id,
		PodID:           podID,
		OrganizerID:     organizerID,
		Title:           title,
		RoomName:        roomName(podID, id),
		StartsAt:        in.StartsAt.UTC(),
		DurationMinutes: duration,
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return meeting.Meeting{}, ErrPodNotFound
		}
		return meeting.Meeting{}, ErrInternal
	}

	u.notifyMembers(ctx, created)
	return created, nil
}

func (u *Meeting) ListUpcoming(ctx context.Context, podID, userID uuid.UUID) ([]meeting.Meeting, error) {
	if podID == uuid.Nil || userID == uuid.Nil {
		return nil, ErrInvalidInput
	}

	isMember, err := u.pods.IsMember(ctx, podID, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if !isMember {
		return nil, ErrNotMember
	}

	items, err := u.meetings.FindUpcomingByPod(ctx, podID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

// CancelMeeting is allowed for the organizer and for the pod lead.
func (u *Meeting) CancelMeeting(ctx context.Context, meetingID, userID uuid.UUID) error {
	if meetingID == uuid.Nil || userID == uuid.Nil {
		return ErrInvalidInput
	}

	m, err := u.meetings.GetByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, repository.ErrMeetingNotFound) {
			return ErrMeetingNotFound
		}
		return ErrInternal
	}

	if m.OrganizerID != userID {
		p, err := u.pods.GetByID(ctx, m.PodID)
		if err != nil {
			return ErrInternal
		}
		if p.LeadID != userID {
			return ErrForbidden
		}
	}

	if _, err := u.meetings.Delete(ctx, meetingID); err != nil {
		return ErrInternal
	}
	return nil
}

// notifyMembers fans out a post-commit event to every member except the
// organizer. A failed member listing only costs the notifications.
func (u *Meeting) notifyMembers(ctx context.Context, m meeting.Meeting) {
	if u.emitter == nil {
		return
	}
	members, err := u.pods.Members(ctx, m.PodID)
	if err != nil {
		return
	}
	for _, member := range members {
		if member.UserID == m.OrganizerID {
			continue
		}
		u.emitter.Emit(ctx, notify.Event{
			UserID: member.UserID,
			Type:   notification.TypeMeeting,
			Title:  m.Title,
			Body:   fmt.Sprintf("Meeting scheduled for %s in room %s", m.StartsAt.Format(time.RFC3339), m.RoomName),
		})
	}
}

func roomName(podID, meetingID uuid.UUID) string {
	return fmt.Sprintf("pod-%s-%s", shortID(podID), shortID(meetingID))
}

func shortID(id uuid.UUID) string {
	s := id.String()
	return s[:8]
}
