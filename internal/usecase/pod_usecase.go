package usecase

import (
	"context"
	"errors"
	"strings"

	"career-pods/internal/domain/pod"
	"career-pods/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrPodNotFound   = errors.New("pod not found")
	ErrAlreadyMember = errors.New("already a pod member")
	ErrNotMember     = errors.New("not a pod member")
)

type CreatePodInput struct {
	Name        string
	Description string
}

type PodDetail struct {
	Pod     pod.Pod
	Members []pod.Member
}

type PodUsecase interface {
	CreatePod(ctx context.Context, userID uuid.UUID, in CreatePodInput) (pod.Pod, error)
	ListPods(ctx context.Context) ([]pod.Pod, error)
	GetPod(ctx context.Context, id uuid.UUID) (PodDetail, error)
	JoinPod(ctx context.Context, podID, userID uuid.UUID) error
	LeavePod(ctx context.Context, podID, userID uuid.UUID) error
}

type Pod struct {
	repo repository.PodRepository
}

func NewPodUsecase(repo repository.PodRepository) *Pod {
	return &Pod{repo: repo}
}

func (u *Pod) CreatePod(ctx context.Context, userID uuid.UUID, in CreatePodInput) (pod.Pod, error) {
	if userID == uuid.Nil {
		return pod.Pod{}, ErrInvalidInput
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return pod.Pod{}, ErrInvalidInput
	}

	created, err := u.repo.Create(ctx, pod.Pod{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		LeadID:      userID,
	})
	if err != nil {
		return pod.Pod{}, ErrInternal
	}
	return created, nil
}

func (u *Pod) ListPods(ctx context.Context) ([]pod.Pod, error) {
	items, err := u.repo.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Pod) GetPod(ctx context.Context, id uuid.UUID) (PodDetail, error) {
	if id == uuid.Nil {
		return PodDetail{}, ErrInvalidInput
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPodNotFound) {
			return PodDetail{}, ErrPodNotFound
		}
		return PodDetail{}, ErrInternal
	}

	members, err := u.repo.Members(ctx, id)
	if err != nil {
		return PodDetail{}, ErrInternal
	}
	return PodDetail{Pod: p, Members: members}, nil
}

func (u *Pod) JoinPod(ctx context.Context, podID, userID uuid.UUID) error {
	if podID == uuid.Nil || userID == uuid.Nil {
		return ErrInvalidInput
	}

	if _, err := u.repo.GetByID(ctx, podID); err != nil {
		if errors.Is(err, repository.ErrPodNotFound) {
			return ErrPodNotFound
		}
		return ErrInternal
	}

	err := u.repo.AddMember(ctx, pod.Member{PodID: podID, UserID: userID, Role: pod.RoleMember})
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyMember
		}
		if isForeignKeyViolation(err) {
			return ErrPodNotFound
		}
		return ErrInternal
	}
	return nil
}

// LeavePod removes the membership. The lead cannot leave their own pod;
// pods are not transferable in this slice of the product.
func (u *Pod) LeavePod(ctx context.Context, podID, userID uuid.UUID) error {
	if podID == uuid.Nil || userID == uuid.Nil {
		return ErrInvalidInput
	}

	p, err := u.repo.GetByID(ctx, podID)
	if err != nil {
		if errors.Is(err, repository.ErrPodNotFound) {
			return ErrPodNotFound
		}
		return ErrInternal
	}
	if p.LeadID == userID {
		return ErrForbidden
	}

	affected, err := u.repo.RemoveMember(ctx, podID, userID)
	if err != nil {
		return ErrInternal
	}
	if affected == 0 {
		return ErrNotMember
	}
	return nil
}
