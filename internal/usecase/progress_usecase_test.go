package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"career-pods/internal/database"
	"career-pods/internal/domain/achievement"
	"career-pods/internal/domain/interest"
	"career-pods/internal/domain/notification"
	"career-pods/internal/domain/progress"
	"career-pods/internal/domain/skill"
	"career-pods/internal/notify"
	"career-pods/internal/repository"

	"github.com/google/uuid"
)

type progressKey struct {
	userID  uuid.UUID
	skillID uuid.UUID
}

// fakeProgressRepo keeps records in memory and applies the same partial
// update and monotonic achieved_at rules as the SQL implementation.
type fakeProgressRepo struct {
	rows        map[progressKey]progress.Record
	err         error
	txDeleteErr error
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{rows: make(map[progressKey]progress.Record)}
}

func (f *fakeProgressRepo) Upsert(_ context.Context, userID, skillID uuid.UUID, p repository.UpsertProgressParams) (progress.Record, error) {
	if f.err != nil {
		return progress.Record{}, f.err
	}
	key := progressKey{userID, skillID}
	rec, ok := f.rows[key]
	if !ok {
		rec = progress.Record{
			ID:           uuid.New(),
			UserID:       userID,
			SkillID:      skillID,
			CurrentLevel: progress.MinLevel,
			TargetLevel:  progress.DefaultTargetLevel,
		}
	}
	if p.NewLevel != nil {
		rec.CurrentLevel = *p.NewLevel
	}
	if p.TargetLevel != nil {
		rec.TargetLevel = *p.TargetLevel
	}
	if p.Notes != nil {
		rec.Notes = *p.Notes
	}
	if rec.AchievedAt == nil && p.NewLevel != nil && *p.NewLevel == progress.MaxLevel {
		now := time.Now().UTC()
		rec.AchievedAt = &now
	}
	f.rows[key] = rec
	return rec, nil
}

func (f *fakeProgressRepo) CreateInTx(_ context.Context, _ database.Tx, rec progress.Record) error {
	key := progressKey{rec.UserID, rec.SkillID}
	if _, ok := f.rows[key]; ok {
		return errDuplicate
	}
	f.rows[key] = rec
	return nil
}

func (f *fakeProgressRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]progress.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []progress.Record
	for key, rec := range f.rows {
		if key.userID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeProgressRepo) Delete(_ context.Context, userID, skillID uuid.UUID) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	key := progressKey{userID, skillID}
	if _, ok := f.rows[key]; !ok {
		return 0, nil
	}
	delete(f.rows, key)
	return 1, nil
}

func (f *fakeProgressRepo) DeleteInTx(ctx context.Context, _ database.Tx, userID, skillID uuid.UUID) (int64, error) {
	if f.txDeleteErr != nil {
		return 0, f.txDeleteErr
	}
	return f.Delete(ctx, userID, skillID)
}

var errDuplicate = errors.New("duplicate")

type fakeUserSkillRepo struct {
	items []skill.UserSkill
}

func (f *fakeUserSkillRepo) FindByUserID(context.Context, uuid.UUID) ([]skill.UserSkill, error) {
	return f.items, nil
}
func (f *fakeUserSkillRepo) Exists(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}
func (f *fakeUserSkillRepo) CreateInTx(context.Context, database.Tx, skill.UserSkill) error {
	return nil
}
func (f *fakeUserSkillRepo) Delete(context.Context, uuid.UUID, uuid.UUID) (int64, error) {
	return 1, nil
}
func (f *fakeUserSkillRepo) DeleteInTx(context.Context, database.Tx, uuid.UUID, uuid.UUID) (int64, error) {
	return 1, nil
}

type fakeInterestRepo struct {
	items []interest.CareerInterest
}

func (f *fakeInterestRepo) Create(_ context.Context, ci interest.CareerInterest) (interest.CareerInterest, error) {
	f.items = append(f.items, ci)
	return ci, nil
}
func (f *fakeInterestRepo) FindByUserID(context.Context, uuid.UUID) ([]interest.CareerInterest, error) {
	return f.items, nil
}

type recordingEmitter struct {
	events []notify.Event
}

func (r *recordingEmitter) Emit(_ context.Context, evt notify.Event) {
	r.events = append(r.events, evt)
}

type fakeCache struct {
	store   map[string][]byte
	deletes []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]byte)}
}

func (f *fakeCache) GetJSON(_ context.Context, key string, _ any) (bool, error) {
	_, ok := f.store[key]
	return ok, nil
}
func (f *fakeCache) SetJSON(_ context.Context, key string, _ any, _ time.Duration) error {
	f.store[key] = []byte("cached")
	return nil
}
func (f *fakeCache) Delete(_ context.Context, key string) error {
	f.deletes = append(f.deletes, key)
	delete(f.store, key)
	return nil
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func newProgressUsecase(repo *fakeProgressRepo, emitter *recordingEmitter) *Progress {
	return NewProgressUsecase(repo, &fakeUserSkillRepo{}, &fakeInterestRepo{}, newFakeCache(), emitter)
}

func TestUpsertProgress_InvalidInput(t *testing.T) {
	uc := newProgressUsecase(newFakeProgressRepo(), &recordingEmitter{})

	cases := []struct {
		name   string
		userID uuid.UUID
		in     UpsertProgressInput
	}{
		{"nil user", uuid.Nil, UpsertProgressInput{SkillID: uuid.New()}},
		{"nil skill", uuid.New(), UpsertProgressInput{}},
		{"level too low", uuid.New(), UpsertProgressInput{SkillID: uuid.New(), NewLevel: intPtr(0)}},
		{"level too high", uuid.New(), UpsertProgressInput{SkillID: uuid.New(), NewLevel: intPtr(6)}},
		{"target too high", uuid.New(), UpsertProgressInput{SkillID: uuid.New(), TargetLevel: intPtr(9)}},
	}
	for _, tc := range cases {
		if _, err := uc.UpsertProgress(context.Background(), tc.userID, tc.in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestUpsertProgress_PartialUpdatePreservesOtherFields(t *testing.T) {
	repo := newFakeProgressRepo()
	uc := newProgressUsecase(repo, &recordingEmitter{})
	userID, skillID := uuid.New(), uuid.New()

	_, err := uc.UpsertProgress(context.Background(), userID, UpsertProgressInput{
		SkillID:  skillID,
		NewLevel: intPtr(3),
		Notes:    strPtr("mock interviews weekly"),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	res, err := uc.UpsertProgress(context.Background(), userID, UpsertProgressInput{
		SkillID:     skillID,
		TargetLevel: intPtr(4),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Record.CurrentLevel != 3 {
		t.Fatalf("expected level 3 preserved, got %d", res.Record.CurrentLevel)
	}
	if res.Record.Notes != "mock interviews weekly" {
		t.Fatalf("expected notes preserved, got %q", res.Record.Notes)
	}
	if res.Record.TargetLevel != 4 {
		t.Fatalf("expected target 4, got %d", res.Record.TargetLevel)
	}
}

func TestUpsertProgress_FirstWriteWithoutLevelDefaults(t *testing.T) {
	repo := newFakeProgressRepo()
	uc := newProgressUsecase(repo, &recordingEmitter{})
	userID, skillID := uuid.New(), uuid.New()

	res, err := uc.UpsertProgress(context.Background(), userID, UpsertProgressInput{
		SkillID: skillID,
		Notes:   strPtr("just started"),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Record.CurrentLevel != progress.MinLevel {
		t.Fatalf("expected new row at level %d, got %d", progress.MinLevel, res.Record.CurrentLevel)
	}
	if res.Record.TargetLevel != progress.DefaultTargetLevel {
		t.Fatalf("expected default target %d, got %d", progress.DefaultTargetLevel, res.Record.TargetLevel)
	}
	if res.Record.AchievedAt != nil {
		t.Fatalf("new row without a level write must not be achieved")
	}
}

func TestUpsertProgress_RepeatedMaxLevelKeepsAchievedAt(t *testing.T) {
	repo := newFakeProgressRepo()
	uc := newProgressUsecase(repo, &recordingEmitter{})
	userID, skillID := uuid.New(), uuid.New()

	first, err := uc.UpsertProgress(context.Background(), userID, UpsertProgressInput{SkillID: skillID, NewLevel: intPtr(progress.MaxLevel)})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if first.Record.AchievedAt == nil {
		t.Fatalf("expected AchievedAt set on reaching max level")
	}

	second, err := uc.UpsertProgress(context.Background(), userID, UpsertProgressInput{SkillID: skillID, NewLevel: intPtr(progress.MaxLevel)})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if second.Record.AchievedAt == nil {
		t.Fatalf("expected AchievedAt preserved on repeat")
	}
	if !second.Record.AchievedAt.Equal(*first.Record.AchievedAt) {
		t.Fatalf("re-reaching max level overwrote AchievedAt: %v -> %v", first.Record.AchievedAt, second.Record.AchievedAt)
	}
}

func TestUpsertProgress_AchievedAtSurvivesLevelDrop(t *testing.T) {
	repo := newFakeProgressRepo()
	uc := newProgressUsecase(repo, &recordingEmitter{})
	userID, skillID := uuid.New(), uuid.New()

	if _, err := uc.UpsertProgress(context.Background(), userID, UpsertProgressInput{SkillID: skillID, NewLevel: intPtr(5)}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	res, err := uc.UpsertProgress(context.Background(), userID, UpsertProgressInput{SkillID: skillID, NewLevel: intPtr(2)})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Record.AchievedAt == nil {
		t.Fatalf("expected AchievedAt to survive the level drop")
	}
	if res.Record.CurrentLevel != 2 {
		t.Fatalf("expected level 2, got %d", res.Record.CurrentLevel)
	}
}

func TestUpsertProgress_EmitsBadgeEvent(t *testing.T) {
	repo := newFakeProgressRepo()
	emitter := &recordingEmitter{}
	uc := newProgressUsecase(repo, emitter)
	userID := uuid.New()

	// One achieved skill out of one tracked: 100% but below the master
	// floor, so halfway is reported.
	res, err := uc.UpsertProgress(context.Background(), userID, UpsertProgressInput{SkillID: uuid.New(), NewLevel: intPtr(5)})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Summary.Badge == nil || res.Summary.Badge.ID != achievement.BadgeHalfway {
		t.Fatalf("expected halfway badge, got %+v", res.Summary.Badge)
	}
	if len(emitter.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(emitter.events))
	}
	evt := emitter.events[0]
	if evt.UserID != userID || evt.Type != notification.TypeBadgeEarned {
		t.Fatalf("unexpected event: %+v", evt)
	}
}

func TestUpsertProgress_NoBadgeNoEvent(t *testing.T) {
	repo := newFakeProgressRepo()
	emitter := &recordingEmitter{}
	uc := newProgressUsecase(repo, emitter)
	userID := uuid.New()

	// Two tracked, none achieved: 0%, no badge.
	for i := 0; i < 2; i++ {
		if _, err := uc.UpsertProgress(context.Background(), userID, UpsertProgressInput{SkillID: uuid.New(), NewLevel: intPtr(2)}); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}
	if len(emitter.events) != 0 {
		t.Fatalf("expected no events, got %d", len(emitter.events))
	}
}

func TestUpsertProgress_MasterAtFiveAchieved(t *testing.T) {
	repo := newFakeProgressRepo()
	emitter := &recordingEmitter{}
	uc := newProgressUsecase(repo, emitter)
	userID := uuid.New()

	var res ProgressResult
	var err error
	for i := 0; i < 5; i++ {
		res, err = uc.UpsertProgress(context.Background(), userID, UpsertProgressInput{SkillID: uuid.New(), NewLevel: intPtr(5)})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}
	if res.Summary.Badge == nil || res.Summary.Badge.ID != achievement.BadgeMaster {
		t.Fatalf("expected master badge at 5/5, got %+v", res.Summary.Badge)
	}
	if res.Summary.CompletionPercentage != 100 {
		t.Fatalf("expected 100%%, got %d", res.Summary.CompletionPercentage)
	}
}

func TestDeleteProgress_Idempotent(t *testing.T) {
	repo := newFakeProgressRepo()
	uc := newProgressUsecase(repo, &recordingEmitter{})
	userID, skillID := uuid.New(), uuid.New()

	if err := uc.DeleteProgress(context.Background(), userID, skillID); err != nil {
		t.Fatalf("deleting absent row should succeed, got %v", err)
	}

	if _, err := uc.UpsertProgress(context.Background(), userID, UpsertProgressInput{SkillID: skillID, NewLevel: intPtr(2)}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := uc.DeleteProgress(context.Background(), userID, skillID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := uc.DeleteProgress(context.Background(), userID, skillID); err != nil {
		t.Fatalf("second delete should succeed, got %v", err)
	}
}

func TestOverview_InvalidatesAfterWrite(t *testing.T) {
	repo := newFakeProgressRepo()
	summaryCache := newFakeCache()
	uc := NewProgressUsecase(repo, &fakeUserSkillRepo{}, &fakeInterestRepo{}, summaryCache, &recordingEmitter{})
	userID := uuid.New()

	if _, err := uc.Overview(context.Background(), userID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(summaryCache.store) != 1 {
		t.Fatalf("expected overview to be cached")
	}

	if _, err := uc.UpsertProgress(context.Background(), userID, UpsertProgressInput{SkillID: uuid.New(), NewLevel: intPtr(2)}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(summaryCache.store) != 0 {
		t.Fatalf("expected cached overview to be invalidated after write")
	}
}
