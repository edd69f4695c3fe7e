package handler

import (
	"errors"

	"career-pods/internal/delivery/http/dto"
	"career-pods/internal/delivery/http/middleware"
	"career-pods/internal/domain/achievement"
	"career-pods/internal/domain/progress"
	"career-pods/internal/pkg/response"
	"career-pods/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProgressHandler struct {
	uc usecase.ProgressUsecase
}

type upsertProgressRequest struct {
	SkillID     uuid.UUID `json:"skill_id"`
	NewLevel    *int      `json:"new_level"`
	TargetLevel *int      `json:"target_level"`
	Notes       *string   `json:"notes"`
}

func NewProgressHandler(uc usecase.ProgressUsecase) *ProgressHandler {
	return &ProgressHandler{uc: uc}
}

func (h *ProgressHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/progress")
	grp.Get("/", h.Overview)
	grp.Put("/", h.Upsert)
	grp.Delete("/", h.Delete)
}

func (h *ProgressHandler) Upsert(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req upsertProgressRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.uc.UpsertProgress(c.Context(), userID, usecase.UpsertProgressInput{
		SkillID:     req.SkillID,
		NewLevel:    req.NewLevel,
		TargetLevel: req.TargetLevel,
		Notes:       req.Notes,
	})
	if err != nil {
		return mapProgressUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.UpsertProgressResponse{
		Progress: toProgressResponse(res.Record),
		Summary:  toSummaryResponse(res.Summary),
	})
}

func (h *ProgressHandler) Delete(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	skillID, err := uuid.Parse(c.Query("skill_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.DeleteProgress(c.Context(), userID, skillID); err != nil {
		return mapProgressUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ProgressHandler) Overview(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	overview, err := h.uc.Overview(c.Context(), userID)
	if err != nil {
		return mapProgressUsecaseError(err)
	}

	res := dto.ProgressOverviewResponse{
		Records:   make([]dto.ProgressResponse, 0, len(overview.Records)),
		Skills:    make([]dto.TrackedSkillResponse, 0, len(overview.Skills)),
		Interests: make([]dto.CareerInterestResponse, 0, len(overview.Interests)),
		Summary:   toSummaryResponse(overview.Summary),
	}
	for _, rec := range overview.Records {
		res.Records = append(res.Records, toProgressResponse(rec))
	}
	for _, us := range overview.Skills {
		res.Skills = append(res.Skills, dto.TrackedSkillResponse{
			ID:           us.ID,
			SkillID:      us.SkillID,
			SkillName:    us.SkillName,
			CurrentLevel: us.CurrentLevel,
			TargetLevel:  us.TargetLevel,
		})
	}
	for _, ci := range overview.Interests {
		res.Interests = append(res.Interests, toCareerInterestResponse(ci))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func toProgressResponse(rec progress.Record) dto.ProgressResponse {
	return dto.ProgressResponse{
		ID:           rec.ID,
		SkillID:      rec.SkillID,
		CurrentLevel: rec.CurrentLevel,
		TargetLevel:  rec.TargetLevel,
		Notes:        rec.Notes,
		AchievedAt:   rec.AchievedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}

func toSummaryResponse(s achievement.Summary) dto.SummaryResponse {
	out := dto.SummaryResponse{CompletionPercentage: s.CompletionPercentage}
	if s.Badge != nil {
		out.Badge = &dto.BadgeResponse{ID: s.Badge.ID, Name: s.Badge.Name}
	}
	return out
}

func mapProgressUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
