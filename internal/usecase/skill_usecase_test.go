package usecase

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"career-pods/internal/database"
	"career-pods/internal/domain/progress"
	"career-pods/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Exec(context.Context, string, ...any) (int64, error)          { return 0, nil }
func (f *fakeTx) Query(context.Context, string, ...any) (database.Rows, error) { return nil, nil }
func (f *fakeTx) QueryRow(context.Context, string, ...any) database.Row        { return nil }
func (f *fakeTx) Commit(context.Context) error                                 { f.committed = true; return nil }
func (f *fakeTx) Rollback(context.Context) error                               { f.rolledBack = true; return nil }

type fakeDB struct {
	tx *fakeTx
}

func (f *fakeDB) Ping(context.Context) error                                   { return nil }
func (f *fakeDB) Close() error                                                 { return nil }
func (f *fakeDB) Exec(context.Context, string, ...any) (int64, error)          { return 0, nil }
func (f *fakeDB) Query(context.Context, string, ...any) (database.Rows, error) { return nil, nil }
func (f *fakeDB) QueryRow(context.Context, string, ...any) database.Row        { return nil }
func (f *fakeDB) SQLDB() *sql.DB                                               { return nil }
func (f *fakeDB) Begin(context.Context) (database.Tx, error) {
	f.tx = &fakeTx{}
	return f.tx, nil
}

type fakeSkillRepo struct {
	catalog map[string]skill.Skill
}

func newFakeSkillRepo() *fakeSkillRepo {
	return &fakeSkillRepo{catalog: make(map[string]skill.Skill)}
}

func (f *fakeSkillRepo) GetAllSkills(context.Context) ([]skill.Skill, error) {
	var out []skill.Skill
	for _, s := range f.catalog {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSkillRepo) ResolveByName(_ context.Context, name string) (skill.Skill, error) {
	if s, ok := f.catalog[name]; ok {
		return s, nil
	}
	s := skill.Skill{ID: uuid.New(), Name: name, Category: skill.DefaultCategory}
	f.catalog[name] = s
	return s, nil
}

type trackingUserSkillRepo struct {
	fakeUserSkillRepo
	exists      bool
	createErr   error
	createCalls int
}

func (f *trackingUserSkillRepo) Exists(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return f.exists, nil
}

func (f *trackingUserSkillRepo) CreateInTx(context.Context, database.Tx, skill.UserSkill) error {
	f.createCalls++
	return f.createErr
}

func newSkillUsecase(db *fakeDB, skills *fakeSkillRepo, userSkills *trackingUserSkillRepo, progressRepo *fakeProgressRepo) *SkillTracking {
	return NewSkillUsecase(db, skills, userSkills, progressRepo, newFakeCache())
}

func TestTrackSkill_Defaults(t *testing.T) {
	db := &fakeDB{}
	uc := newSkillUsecase(db, newFakeSkillRepo(), &trackingUserSkillRepo{}, newFakeProgressRepo())

	got, err := uc.TrackSkill(context.Background(), uuid.New(), TrackSkillInput{SkillName: "  Go  "})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Skill.Name != "Go" {
		t.Fatalf("expected trimmed name, got %q", got.Skill.Name)
	}
	if got.Progress.CurrentLevel != progress.MinLevel {
		t.Fatalf("expected default level %d, got %d", progress.MinLevel, got.Progress.CurrentLevel)
	}
	if got.Progress.TargetLevel != progress.DefaultTargetLevel {
		t.Fatalf("expected default target %d, got %d", progress.DefaultTargetLevel, got.Progress.TargetLevel)
	}
	if got.Progress.AchievedAt != nil {
		t.Fatalf("fresh tracking at level 1 must not be achieved")
	}
	if db.tx == nil || !db.tx.committed {
		t.Fatalf("expected the tracking transaction to commit")
	}
}

func TestTrackSkill_InitialLevelMaxSetsAchieved(t *testing.T) {
	uc := newSkillUsecase(&fakeDB{}, newFakeSkillRepo(), &trackingUserSkillRepo{}, newFakeProgressRepo())

	got, err := uc.TrackSkill(context.Background(), uuid.New(), TrackSkillInput{
		SkillName:    "Kubernetes",
		InitialLevel: intPtr(progress.MaxLevel),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Progress.AchievedAt == nil {
		t.Fatalf("tracking at max level must set AchievedAt")
	}
}

func TestTrackSkill_InvalidInput(t *testing.T) {
	uc := newSkillUsecase(&fakeDB{}, newFakeSkillRepo(), &trackingUserSkillRepo{}, newFakeProgressRepo())

	if _, err := uc.TrackSkill(context.Background(), uuid.Nil, TrackSkillInput{SkillName: "Go"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for nil user, got %v", err)
	}
	if _, err := uc.TrackSkill(context.Background(), uuid.New(), TrackSkillInput{SkillName: "   "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
	if _, err := uc.TrackSkill(context.Background(), uuid.New(), TrackSkillInput{SkillName: "Go", InitialLevel: intPtr(0)}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for level 0, got %v", err)
	}
}

func TestTrackSkill_AlreadyTrackedFromPrecheck(t *testing.T) {
	uc := newSkillUsecase(&fakeDB{}, newFakeSkillRepo(), &trackingUserSkillRepo{exists: true}, newFakeProgressRepo())

	if _, err := uc.TrackSkill(context.Background(), uuid.New(), TrackSkillInput{SkillName: "Go"}); !errors.Is(err, ErrSkillAlreadyTracked) {
		t.Fatalf("expected ErrSkillAlreadyTracked, got %v", err)
	}
}

func TestTrackSkill_AlreadyTrackedFromUniqueViolation(t *testing.T) {
	// The pre-check can race with a concurrent insert; the constraint is
	// the backstop.
	repo := &trackingUserSkillRepo{createErr: &pgconn.PgError{Code: "23505"}}
	db := &fakeDB{}
	uc := newSkillUsecase(db, newFakeSkillRepo(), repo, newFakeProgressRepo())

	if _, err := uc.TrackSkill(context.Background(), uuid.New(), TrackSkillInput{SkillName: "Go"}); !errors.Is(err, ErrSkillAlreadyTracked) {
		t.Fatalf("expected ErrSkillAlreadyTracked, got %v", err)
	}
	if db.tx == nil || db.tx.committed {
		t.Fatalf("expected the transaction not to commit")
	}
	if !db.tx.rolledBack {
		t.Fatalf("expected rollback")
	}
}

func TestTrackSkill_ResolveReusesCatalogEntry(t *testing.T) {
	skills := newFakeSkillRepo()
	uc := newSkillUsecase(&fakeDB{}, skills, &trackingUserSkillRepo{}, newFakeProgressRepo())

	first, err := uc.TrackSkill(context.Background(), uuid.New(), TrackSkillInput{SkillName: "SQL"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second, err := uc.TrackSkill(context.Background(), uuid.New(), TrackSkillInput{SkillName: "SQL"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if first.Skill.ID != second.Skill.ID {
		t.Fatalf("expected both users to resolve the same catalog entry")
	}
	if len(skills.catalog) != 1 {
		t.Fatalf("expected 1 catalog entry, got %d", len(skills.catalog))
	}
}

func TestUntrackSkill_Idempotent(t *testing.T) {
	db := &fakeDB{}
	uc := newSkillUsecase(db, newFakeSkillRepo(), &trackingUserSkillRepo{}, newFakeProgressRepo())

	if err := uc.UntrackSkill(context.Background(), uuid.New(), uuid.New()); err != nil {
		t.Fatalf("untracking an absent skill should succeed, got %v", err)
	}
	if !db.tx.committed {
		t.Fatalf("expected delete transaction to commit")
	}
}

func TestUntrackSkill_RollsBackWhenProgressDeleteFails(t *testing.T) {
	db := &fakeDB{}
	progressRepo := newFakeProgressRepo()
	progressRepo.txDeleteErr = errors.New("connection reset")
	uc := newSkillUsecase(db, newFakeSkillRepo(), &trackingUserSkillRepo{}, progressRepo)

	err := uc.UntrackSkill(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
	if db.tx.committed {
		t.Fatalf("transaction committed despite failed progress delete")
	}
	if !db.tx.rolledBack {
		t.Fatalf("expected transaction rollback so the user_skill delete does not survive alone")
	}
}

func TestListSkills(t *testing.T) {
	skills := newFakeSkillRepo()
	for _, name := range []string{"Go", "SQL", "System Design"} {
		if _, err := skills.ResolveByName(context.Background(), name); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}
	uc := newSkillUsecase(&fakeDB{}, skills, &trackingUserSkillRepo{}, newFakeProgressRepo())

	items, err := uc.ListSkills(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 skills, got %d", len(items))
	}
	for _, s := range items {
		if strings.TrimSpace(s.Name) == "" {
			t.Fatalf("catalog entry with empty name")
		}
	}
}
