package middleware

import (
	"errors"
	"log"

	"career-pods/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type AppError struct {
	StatusCode int
	Message    string
	Data       interface{}
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, data interface{}, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

// ErrorMiddleware converts returned errors into the response envelope.
// 5xx causes are logged server-side; the body carries the cause string only
// when includeDetail is set (non-production).
type ErrorMiddleware struct {
	logger        *log.Logger
	includeDetail bool
}

func NewErrorMiddleware(logger *log.Logger, includeDetail bool) *ErrorMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &ErrorMiddleware{logger: logger, includeDetail: includeDetail}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Printf("panic recovered | path=%s panic=%v", c.Path(), r)
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, msg, data := m.normalizeError(c, err)
		return response.Error(c, status, msg, data)
	}
}

func (m *ErrorMiddleware) normalizeError(c fiber.Ctx, err error) (int, string, interface{}) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		status := appErr.StatusCode
		if status <= 0 {
			status = fiber.StatusInternalServerError
		}

		if status >= 500 {
			m.logger.Printf("request failed | path=%s status=%d err=%v", c.Path(), status, err)
			return fiber.StatusInternalServerError, response.MessageInternalServerError, m.detail(appErr.Cause)
		}

		msg := appErr.Message
		if msg == "" {
			msg = response.DefaultMessageForStatus(status)
		}
		return status, msg, appErr.Data
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		if status <= 0 {
			status = fiber.StatusInternalServerError
		}

		if status >= 500 {
			m.logger.Printf("request failed | path=%s status=%d err=%v", c.Path(), status, err)
			return fiber.StatusInternalServerError, response.MessageInternalServerError, m.detail(fiberErr)
		}

		msg := fiberErr.Message
		if msg == "" {
			msg = response.DefaultMessageForStatus(status)
		}
		return status, msg, nil
	}

	m.logger.Printf("request failed | path=%s status=500 err=%v", c.Path(), err)
	return fiber.StatusInternalServerError, response.MessageInternalServerError, m.detail(err)
}

func (m *ErrorMiddleware) detail(cause error) interface{} {
	if !m.includeDetail || cause == nil {
		return nil
	}
	return map[string]string{"detail": cause.Error()}
}
