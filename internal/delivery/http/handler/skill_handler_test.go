package handler

import (
	"errors"
	"testing"

	"career-pods/internal/delivery/http/middleware"
	"career-pods/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func TestMapSkillUsecaseError(t *testing.T) {
	cases := []struct {
		name string
		in   error
		code int
	}{
		// Duplicate tracking is a domain-level validation failure, not a
		// conflict: it surfaces as 400 like the other input errors.
		{"already tracked", usecase.ErrSkillAlreadyTracked, fiber.StatusBadRequest},
		{"not found", usecase.ErrSkillNotFound, fiber.StatusNotFound},
		{"invalid input", usecase.ErrInvalidInput, fiber.StatusBadRequest},
		{"internal", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := mapSkillUsecaseError(tc.in)
			var appErr *middleware.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("expected *middleware.AppError, got %T", err)
			}
			if appErr.StatusCode != tc.code {
				t.Fatalf("expected status %d, got %d", tc.code, appErr.StatusCode)
			}
		})
	}

	if mapSkillUsecaseError(nil) != nil {
		t.Fatalf("nil error must map to nil")
	}
}
