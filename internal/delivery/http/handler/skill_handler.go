package handler

import (
	"errors"

	"career-pods/internal/delivery/http/dto"
	"career-pods/internal/delivery/http/middleware"
	"career-pods/internal/pkg/response"
	"career-pods/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SkillHandler struct {
	uc usecase.SkillUsecase
}

type trackSkillRequest struct {
	SkillName    string `json:"skill_name"`
	InitialLevel *int   `json:"initial_level"`
	TargetLevel  *int   `json:"target_level"`
}

func NewSkillHandler(uc usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/skills")
	grp.Get("/", h.List)
	grp.Post("/", h.Track)
	grp.Delete("/:skillId", h.Untrack)
}

func (h *SkillHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListSkills(c.Context())
	if err != nil {
		return mapSkillUsecaseError(err)
	}

	res := make([]dto.SkillResponse, 0, len(items))
	for _, s := range items {
		res = append(res, dto.SkillResponse{
			ID:          s.ID,
			Name:        s.Name,
			Category:    s.Category,
			Description: s.Description,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *SkillHandler) Track(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req trackSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	tracked, err := h.uc.TrackSkill(c.Context(), userID, usecase.TrackSkillInput{
		SkillName:    req.SkillName,
		InitialLevel: req.InitialLevel,
		TargetLevel:  req.TargetLevel,
	})
	if err != nil {
		return mapSkillUsecaseError(err)
	}

	res := dto.TrackSkillResponse{
		Skill: dto.SkillResponse{
			ID:          tracked.Skill.ID,
			Name:        tracked.Skill.Name,
			Category:    tracked.Skill.Category,
			Description: tracked.Skill.Description,
		},
		Tracking: dto.TrackedSkillResponse{
			ID:           tracked.UserSkill.ID,
			SkillID:      tracked.UserSkill.SkillID,
			SkillName:    tracked.UserSkill.SkillName,
			CurrentLevel: tracked.UserSkill.CurrentLevel,
			TargetLevel:  tracked.UserSkill.TargetLevel,
		},
		Progress: toProgressResponse(tracked.Progress),
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, res)
}

func (h *SkillHandler) Untrack(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	skillID, err := uuid.Parse(c.Params("skillId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.UntrackSkill(c.Context(), userID, skillID); err != nil {
		return mapSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapSkillUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrSkillAlreadyTracked):
		return middleware.NewAppError(fiber.StatusBadRequest, "Skill already tracked", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
