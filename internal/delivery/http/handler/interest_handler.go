package handler

import (
	"errors"

	"career-pods/internal/delivery/http/dto"
	"career-pods/internal/delivery/http/middleware"
	"career-pods/internal/domain/interest"
	"career-pods/internal/pkg/response"
	"career-pods/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type InterestHandler struct {
	uc usecase.InterestUsecase
}

type createInterestRequest struct {
	Industry    string `json:"industry"`
	RoleGoal    string `json:"role_goal"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

func NewInterestHandler(uc usecase.InterestUsecase) *InterestHandler {
	return &InterestHandler{uc: uc}
}

func (h *InterestHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/career-interests")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
}

func (h *InterestHandler) Create(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createInterestRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.CreateInterest(c.Context(), userID, usecase.CreateInterestInput{
		Industry:    req.Industry,
		RoleGoal:    req.RoleGoal,
		Description: req.Description,
		Priority:    req.Priority,
	})
	if err != nil {
		return mapInterestUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, toCareerInterestResponse(created))
}

func (h *InterestHandler) List(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListInterests(c.Context(), userID)
	if err != nil {
		return mapInterestUsecaseError(err)
	}

	res := make([]dto.CareerInterestResponse, 0, len(items))
	for _, ci := range items {
		res = append(res, toCareerInterestResponse(ci))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func toCareerInterestResponse(ci interest.CareerInterest) dto.CareerInterestResponse {
	return dto.CareerInterestResponse{
		ID:          ci.ID,
		Industry:    ci.Industry,
		RoleGoal:    ci.RoleGoal,
		Description: ci.Description,
		Priority:    string(ci.Priority),
		CreatedAt:   ci.CreatedAt,
	}
}

func mapInterestUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
