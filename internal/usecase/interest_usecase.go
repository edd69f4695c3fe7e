package usecase

import (
	"context"
	"strings"

	"career-pods/internal/domain/interest"
	"career-pods/internal/repository"

	"github.com/google/uuid"
)

type CreateInterestInput struct {
	Industry    string
	RoleGoal    string
	Description string
	Priority    string
}

type InterestUsecase interface {
	CreateInterest(ctx context.Context, userID uuid.UUID, in CreateInterestInput) (interest.CareerInterest, error)
	ListInterests(ctx context.Context, userID uuid.UUID) ([]interest.CareerInterest, error)
}

type Interest struct {
	repo repository.CareerInterestRepository
}

func NewInterestUsecase(repo repository.CareerInterestRepository) *Interest {
	return &Interest{repo: repo}
}

func (u *Interest) CreateInterest(ctx context.Context, userID uuid.UUID, in CreateInterestInput) (interest.CareerInterest, error) {
	if userID == uuid.Nil {
		return interest.CareerInterest{}, ErrInvalidInput
	}

	industry := strings.TrimSpace(in.Industry)
	roleGoal := strings.TrimSpace(in.RoleGoal)
	if industry == "" || roleGoal == "" {
		return interest.CareerInterest{}, ErrInvalidInput
	}

	priority := interest.PriorityMedium
	if p := strings.TrimSpace(in.Priority); p != "" {
		priority = interest.Priority(strings.ToUpper(p))
		if !priority.Valid() {
			return interest.CareerInterest{}, ErrInvalidInput
		}
	}

	created, err := u.repo.Create(ctx, interest.CareerInterest{
		ID:          uuid.New(),
		UserID:      userID,
		Industry:    industry,
		RoleGoal:    roleGoal,
		Description: strings.TrimSpace(in.Description),
		Priority:    priority,
	})
	if err != nil {
		return interest.CareerInterest{}, ErrInternal
	}
	return created, nil
}

func (u *Interest) ListInterests(ctx context.Context, userID uuid.UUID) ([]interest.CareerInterest, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	items, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}
