package v1

import (
	"career-pods/internal/delivery/http/handler"
	"career-pods/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth          *handler.AuthHandler
	Progress      *handler.ProgressHandler
	Skills        *handler.SkillHandler
	Interests     *handler.InterestHandler
	Pods          *handler.PodHandler
	Meetings      *handler.MeetingHandler
	Messages      *handler.MessageHandler
	Notifications *handler.NotificationHandler
}

func Register(r fiber.Router, h Handlers, authMw *middleware.AuthMiddleware) {
	if r == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}

	if authMw == nil {
		return
	}
	protected := r.Group("", authMw.Middleware())

	if h.Progress != nil {
		h.Progress.RegisterRoutes(protected)
	}
	if h.Skills != nil {
		h.Skills.RegisterRoutes(protected)
	}
	if h.Interests != nil {
		h.Interests.RegisterRoutes(protected)
	}
	if h.Pods != nil {
		h.Pods.RegisterRoutes(protected)
	}
	if h.Meetings != nil {
		h.Meetings.RegisterRoutes(protected)
	}
	if h.Messages != nil {
		h.Messages.RegisterRoutes(protected)
	}
	if h.Notifications != nil {
		h.Notifications.RegisterRoutes(protected)
	}
}
