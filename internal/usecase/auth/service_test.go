package auth

import (
	"context"
	"errors"
	"testing"

	"career-pods/internal/domain/user"

	"github.com/google/uuid"
)

type fakeUserRepo struct {
	byID    map[uuid.UUID]user.User
	byEmail map[string]user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[uuid.UUID]user.User),
		byEmail: make(map[string]user.User),
	}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, u user.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return errors.New("duplicate email")
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func TestRegister_NormalizesEmailAndHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	u, err := svc.Register(context.Background(), RegisterInput{Email: "  Student@Campus.EDU ", Password: "correct horse"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Email != "student@campus.edu" {
		t.Fatalf("expected normalized email, got %q", u.Email)
	}
	if u.PasswordHash != "" {
		t.Fatalf("returned user must not carry the hash")
	}

	stored := repo.byEmail["student@campus.edu"]
	if stored.PasswordHash == "" || stored.PasswordHash == "correct horse" {
		t.Fatalf("stored password must be hashed")
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "", Password: "longenough"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank email, got %v", err)
	}
	if _, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.c", Password: "short"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short password, got %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.c", Password: "longenough"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := svc.Register(context.Background(), RegisterInput{Email: "A@B.C", Password: "longenough"}); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.c", Password: "longenough"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	u, err := svc.Login(context.Background(), LoginInput{Email: "A@B.C ", Password: "longenough"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Email != "a@b.c" || u.PasswordHash != "" {
		t.Fatalf("unexpected user: %+v", u)
	}

	if _, err := svc.Login(context.Background(), LoginInput{Email: "a@b.c", Password: "wrong password"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), LoginInput{Email: "ghost@b.c", Password: "longenough"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}
