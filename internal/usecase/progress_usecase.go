package usecase

import (
	"context"
	"time"

	"career-pods/internal/domain/achievement"
	"career-pods/internal/domain/interest"
	"career-pods/internal/domain/notification"
	"career-pods/internal/domain/progress"
	"career-pods/internal/domain/skill"
	"career-pods/internal/infrastructure/cache"
	"career-pods/internal/notify"
	"career-pods/internal/repository"

	"github.com/google/uuid"
)

type UpsertProgressInput struct {
	SkillID     uuid.UUID
	NewLevel    *int
	TargetLevel *int
	Notes       *string
}

type ProgressResult struct {
	Record  progress.Record
	Summary achievement.Summary
}

type ProgressOverview struct {
	Records   []progress.Record         `json:"records"`
	Skills    []skill.UserSkill         `json:"skills"`
	Interests []interest.CareerInterest `json:"interests"`
	Summary   achievement.Summary       `json:"summary"`
}

type ProgressUsecase interface {
	UpsertProgress(ctx context.Context, userID uuid.UUID, in UpsertProgressInput) (ProgressResult, error)
	DeleteProgress(ctx context.Context, userID, skillID uuid.UUID) error
	Overview(ctx context.Context, userID uuid.UUID) (ProgressOverview, error)
}

// SummaryCache is the slice of the redis wrapper the progress usecase needs.
type SummaryCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// MilestoneEmitter receives post-commit events; see the notify package.
type MilestoneEmitter interface {
	Emit(ctx context.Context, evt notify.Event)
}

type Progress struct {
	progressRepo repository.ProgressRepository
	skillRepo    repository.UserSkillRepository
	interestRepo repository.CareerInterestRepository
	cache        SummaryCache
	emitter      MilestoneEmitter
}

func NewProgressUsecase(
	progressRepo repository.ProgressRepository,
	skillRepo repository.UserSkillRepository,
	interestRepo repository.CareerInterestRepository,
	summaryCache SummaryCache,
	emitter MilestoneEmitter,
) *Progress {
	return &Progress{
		progressRepo: progressRepo,
		skillRepo:    skillRepo,
		interestRepo: interestRepo,
		cache:        summaryCache,
		emitter:      emitter,
	}
}

func (u *Progress) UpsertProgress(ctx context.Context, userID uuid.UUID, in UpsertProgressInput) (ProgressResult, error) {
	if userID == uuid.Nil || in.SkillID == uuid.Nil {
		return ProgressResult{}, ErrInvalidInput
	}
	if in.NewLevel != nil && !progress.ValidLevel(*in.NewLevel) {
		return ProgressResult{}, ErrInvalidInput
	}
	if in.TargetLevel != nil && !progress.ValidLevel(*in.TargetLevel) {
		return ProgressResult{}, ErrInvalidInput
	}

	rec, err := u.progressRepo.Upsert(ctx, userID, in.SkillID, repository.UpsertProgressParams{
		NewLevel:    in.NewLevel,
		TargetLevel: in.TargetLevel,
		Notes:       in.Notes,
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return ProgressResult{}, ErrSkillNotFound
		}
		return ProgressResult{}, ErrInternal
	}

	rows, err := u.progressRepo.FindByUserID(ctx, userID)
	if err != nil {
		return ProgressResult{}, ErrInternal
	}
	summary := achievement.Evaluate(rows)

	u.invalidateSummary(ctx, userID)

	if summary.Badge != nil && u.emitter != nil {
		u.emitter.Emit(ctx, notify.Event{
			UserID: userID,
			Type:   notification.TypeBadgeEarned,
			Title:  summary.Badge.Name,
			Body:   badgeBody(summary),
		})
	}

	return ProgressResult{Record: rec, Summary: summary}, nil
}

func (u *Progress) DeleteProgress(ctx context.Context, userID, skillID uuid.UUID) error {
	if userID == uuid.Nil || skillID == uuid.Nil {
		return ErrInvalidInput
	}

	// Idempotent: deleting an absent row succeeds.
	if _, err := u.progressRepo.Delete(ctx, userID, skillID); err != nil {
		return ErrInternal
	}

	u.invalidateSummary(ctx, userID)
	return nil
}

func (u *Progress) Overview(ctx context.Context, userID uuid.UUID) (ProgressOverview, error) {
	if userID == uuid.Nil {
		return ProgressOverview{}, ErrInvalidInput
	}

	key := cache.ProgressSummaryKey(userID.String())
	if u.cache != nil {
		var cached ProgressOverview
		if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	rows, err := u.progressRepo.FindByUserID(ctx, userID)
	if err != nil {
		return ProgressOverview{}, ErrInternal
	}
	skills, err := u.skillRepo.FindByUserID(ctx, userID)
	if err != nil {
		return ProgressOverview{}, ErrInternal
	}
	interests, err := u.interestRepo.FindByUserID(ctx, userID)
	if err != nil {
		return ProgressOverview{}, ErrInternal
	}

	out := ProgressOverview{
		Records:   rows,
		Skills:    skills,
		Interests: interests,
		Summary:   achievement.Evaluate(rows),
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, out, 0)
	}
	return out, nil
}

func (u *Progress) invalidateSummary(ctx context.Context, userID uuid.UUID) {
	if u.cache == nil {
		return
	}
	_ = u.cache.Delete(ctx, cache.ProgressSummaryKey(userID.String()))
}

func badgeBody(s achievement.Summary) string {
	switch s.Badge.ID {
	case achievement.BadgeMaster:
		return "You completed every skill you track. All of them."
	case achievement.BadgeHalfway:
		return "Half of your tracked skills are done."
	default:
		return ""
	}
}
