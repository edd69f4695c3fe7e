package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"career-pods/internal/database"
	"career-pods/internal/domain/progress"
	"career-pods/internal/domain/skill"
	"career-pods/internal/infrastructure/cache"
	"career-pods/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrSkillNotFound       = errors.New("skill not found")
	ErrSkillAlreadyTracked = errors.New("skill already tracked")
)

type TrackSkillInput struct {
	SkillName    string
	InitialLevel *int
	TargetLevel  *int
}

type TrackedSkill struct {
	Skill     skill.Skill
	UserSkill skill.UserSkill
	Progress  progress.Record
}

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]skill.Skill, error)
	TrackSkill(ctx context.Context, userID uuid.UUID, in TrackSkillInput) (TrackedSkill, error)
	UntrackSkill(ctx context.Context, userID, skillID uuid.UUID) error
}

type SkillTracking struct {
	db           database.DB
	skillRepo    repository.SkillRepository
	userSkills   repository.UserSkillRepository
	progressRepo repository.ProgressRepository
	cache        SummaryCache
}

func NewSkillUsecase(
	db database.DB,
	skillRepo repository.SkillRepository,
	userSkills repository.UserSkillRepository,
	progressRepo repository.ProgressRepository,
	summaryCache SummaryCache,
) *SkillTracking {
	return &SkillTracking{
		db:           db,
		skillRepo:    skillRepo,
		userSkills:   userSkills,
		progressRepo: progressRepo,
		cache:        summaryCache,
	}
}

func (u *SkillTracking) ListSkills(ctx context.Context) ([]skill.Skill, error) {
	items, err := u.skillRepo.GetAllSkills(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

// TrackSkill resolves the catalog entry by name (creating it on first
// reference) and creates the UserSkill row plus its parallel progress row in
// one transaction. A duplicate (user, skill) pair surfaces as
// ErrSkillAlreadyTracked, from either the pre-check or the unique
// constraint.
func (u *SkillTracking) TrackSkill(ctx context.Context, userID uuid.UUID, in TrackSkillInput) (TrackedSkill, error) {
	if userID == uuid.Nil {
		return TrackedSkill{}, ErrInvalidInput
	}
	name := strings.TrimSpace(in.SkillName)
	if name == "" {
		return TrackedSkill{}, ErrInvalidInput
	}

	level := progress.MinLevel
	if in.InitialLevel != nil {
		if !progress.ValidLevel(*in.InitialLevel) {
			return TrackedSkill{}, ErrInvalidInput
		}
		level = *in.InitialLevel
	}
	target := progress.DefaultTargetLevel
	if in.TargetLevel != nil {
		if !progress.ValidLevel(*in.TargetLevel) {
			return TrackedSkill{}, ErrInvalidInput
		}
		target = *in.TargetLevel
	}

	resolved, err := u.skillRepo.ResolveByName(ctx, name)
	if err != nil {
		return TrackedSkill{}, ErrInternal
	}

	exists, err := u.userSkills.Exists(ctx, userID, resolved.ID)
	if err != nil {
		return TrackedSkill{}, ErrInternal
	}
	if exists {
		return TrackedSkill{}, ErrSkillAlreadyTracked
	}

	us := skill.UserSkill{
		ID:           uuid.New(),
		UserID:       userID,
		SkillID:      resolved.ID,
		SkillName:    resolved.Name,
		CurrentLevel: level,
		TargetLevel:  target,
	}
	rec := progress.Record{
		ID:           uuid.New(),
		UserID:       userID,
		SkillID:      resolved.ID,
		CurrentLevel: level,
		TargetLevel:  target,
	}
	if level == progress.MaxLevel {
		now := time.Now().UTC()
		rec.AchievedAt = &now
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return TrackedSkill{}, ErrInternal
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if err := u.userSkills.CreateInTx(ctx, tx, us); err != nil {
		if isUniqueViolation(err) {
			return TrackedSkill{}, ErrSkillAlreadyTracked
		}
		return TrackedSkill{}, ErrInternal
	}
	if err := u.progressRepo.CreateInTx(ctx, tx, rec); err != nil {
		if isUniqueViolation(err) {
			return TrackedSkill{}, ErrSkillAlreadyTracked
		}
		return TrackedSkill{}, ErrInternal
	}

	if err := tx.Commit(ctx); err != nil {
		return TrackedSkill{}, ErrInternal
	}

	u.invalidateSummary(ctx, userID)
	return TrackedSkill{Skill: resolved, UserSkill: us, Progress: rec}, nil
}

// UntrackSkill removes both the UserSkill association and its progress row
// in one transaction, mirroring TrackSkill. Idempotent like DeleteProgress.
func (u *SkillTracking) UntrackSkill(ctx context.Context, userID, skillID uuid.UUID) error {
	if userID == uuid.Nil || skillID == uuid.Nil {
		return ErrInvalidInput
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return ErrInternal
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	if _, err := u.userSkills.DeleteInTx(ctx, tx, userID, skillID); err != nil {
		return ErrInternal
	}
	if _, err := u.progressRepo.DeleteInTx(ctx, tx, userID, skillID); err != nil {
		return ErrInternal
	}

	if err := tx.Commit(ctx); err != nil {
		return ErrInternal
	}

	u.invalidateSummary(ctx, userID)
	return nil
}

func (u *SkillTracking) invalidateSummary(ctx context.Context, userID uuid.UUID) {
	if u.cache == nil {
		return
	}
	_ = u.cache.Delete(ctx, cache.ProgressSummaryKey(userID.String()))
}
