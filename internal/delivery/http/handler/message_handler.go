package handler

import (
	"errors"
	"strconv"

	"career-pods/internal/delivery/http/dto"
	"career-pods/internal/delivery/http/middleware"
	"career-pods/internal/domain/message"
	"career-pods/internal/pkg/response"
	"career-pods/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MessageHandler struct {
	uc usecase.MessageUsecase
}

type postMessageRequest struct {
	Body string `json:"body"`
}

func NewMessageHandler(uc usecase.MessageUsecase) *MessageHandler {
	return &MessageHandler{uc: uc}
}

func (h *MessageHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/pods/:id/messages", h.Post)
	r.Get("/pods/:id/messages", h.List)
}

func (h *MessageHandler) Post(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	podID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req postMessageRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.PostMessage(c.Context(), podID, userID, req.Body)
	if err != nil {
		return mapMessageUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, toMessageResponse(created))
}

func (h *MessageHandler) List(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	podID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.ListMessages(c.Context(), podID, userID, limit, offset)
	if err != nil {
		return mapMessageUsecaseError(err)
	}

	res := make([]dto.MessageResponse, 0, len(items))
	for _, m := range items {
		res = append(res, toMessageResponse(m))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func toMessageResponse(m message.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:        m.ID,
		PodID:     m.PodID,
		SenderID:  m.SenderID,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
	}
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func mapMessageUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrPodNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Pod not found", nil, err)
	case errors.Is(err, usecase.ErrNotMember):
		return middleware.NewAppError(fiber.StatusForbidden, "Not a member", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
