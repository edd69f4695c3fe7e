package handler

import (
	"errors"
	"time"

	"career-pods/internal/delivery/http/dto"
	"career-pods/internal/delivery/http/middleware"
	"career-pods/internal/domain/meeting"
	"career-pods/internal/pkg/response"
	"career-pods/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MeetingHandler struct {
	uc usecase.MeetingUsecase
}

type scheduleMeetingRequest struct {
	Title           string    `json:"title"`
	StartsAt        time.Time `json:"starts_at"`
	DurationMinutes int       `json:"duration_minutes"`
}

func NewMeetingHandler(uc usecase.MeetingUsecase) *MeetingHandler {
	return &MeetingHandler{uc: uc}
}

func (h *MeetingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/pods/:id/meetings", h.Schedule)
	r.Get("/pods/:id/meetings", h.ListUpcoming)
	r.Delete("/meetings/:id", h.Cancel)
}

func (h *MeetingHandler) Schedule(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	podID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req scheduleMeetingRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.ScheduleMeeting(c.Context(), podID, userID, usecase.ScheduleMeetingInput{
		Title:           req.Title,
		StartsAt:        req.StartsAt,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		return mapMeetingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, toMeetingResponse(created))
}

func (h *MeetingHandler) ListUpcoming(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	podID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.ListUpcoming(c.Context(), podID, userID)
	if err != nil {
		return mapMeetingUsecaseError(err)
	}

	res := make([]dto.MeetingResponse, 0, len(items))
	for _, m := range items {
		res = append(res, toMeetingResponse(m))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *MeetingHandler) Cancel(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	meetingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.CancelMeeting(c.Context(), meetingID, userID); err != nil {
		return mapMeetingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func toMeetingResponse(m meeting.Meeting) dto.MeetingResponse {
	return dto.MeetingResponse{
		ID:              m.ID,
		PodID:           m.PodID,
		OrganizerID:     m.OrganizerID,
		Title:           m.Title,
		RoomName:        m.RoomName,
		StartsAt:        m.StartsAt,
		DurationMinutes: m.DurationMinutes,
	}
}

func mapMeetingUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrMeetingNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Meeting not found", nil, err)
	case errors.Is(err, usecase.ErrPodNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Pod not found", nil, err)
	case errors.Is(err, usecase.ErrMeetingInPast):
		return middleware.NewAppError(fiber.StatusBadRequest, "Meeting must start in the future", nil, err)
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
