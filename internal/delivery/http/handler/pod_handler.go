package handler

import (
	"errors"

	"career-pods/internal/delivery/http/dto"
	"career-pods/internal/delivery/http/middleware"
	"career-pods/internal/domain/pod"
	"career-pods/internal/pkg/response"
	"career-pods/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type PodHandler struct {
	uc usecase.PodUsecase
}

type createPodRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func NewPodHandler(uc usecase.PodUsecase) *PodHandler {
	return &PodHandler{uc: uc}
}

func (h *PodHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/pods")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Get("/:id", h.Get)
	grp.Post("/:id/join", h.Join)
	grp.Delete("/:id/members", h.Leave)
}

func (h *PodHandler) Create(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createPodRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.CreatePod(c.Context(), userID, usecase.CreatePodInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return mapPodUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, toPodResponse(created))
}

func (h *PodHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListPods(c.Context())
	if err != nil {
		return mapPodUsecaseError(err)
	}

	res := make([]dto.PodResponse, 0, len(items))
	for _, p := range items {
		res = append(res, toPodResponse(p))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *PodHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	detail, err := h.uc.GetPod(c.Context(), id)
	if err != nil {
		return mapPodUsecaseError(err)
	}

	res := dto.PodDetailResponse{
		Pod:     toPodResponse(detail.Pod),
		Members: make([]dto.PodMemberResponse, 0, len(detail.Members)),
	}
	for _, m := range detail.Members {
		res.Members = append(res.Members, dto.PodMemberResponse{
			UserID:   m.UserID,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *PodHandler) Join(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	podID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.JoinPod(c.Context(), podID, userID); err != nil {
		return mapPodUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *PodHandler) Leave(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	podID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.LeavePod(c.Context(), podID, userID); err != nil {
		return mapPodUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func toPodResponse(p pod.Pod) dto.PodResponse {
	return dto.PodResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		LeadID:      p.LeadID,
		CreatedAt:   p.CreatedAt,
	}
}

func mapPodUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrPodNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Pod not found", nil, err)
	case errors.Is(err, usecase.ErrAlreadyMember):
		return middleware.NewAppError(fiber.StatusConflict, "Already a member", nil, err)
	case errors.Is(err, usecase.ErrNotMember):
		return middleware.NewAppError(fiber.StatusForbidden, "Not a member", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
