package routes

import (
	"career-pods/internal/delivery/http/handler"
	"career-pods/internal/delivery/http/middleware"
	v1 "career-pods/internal/delivery/http/routes/v1"
	"career-pods/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Registry holds every HTTP handler and knows where each one mounts.
type Registry struct {
	Health        *handler.HealthHandler
	Auth          *handler.AuthHandler
	Progress      *handler.ProgressHandler
	Skills        *handler.SkillHandler
	Interests     *handler.InterestHandler
	Pods          *handler.PodHandler
	Meetings      *handler.MeetingHandler
	Messages      *handler.MessageHandler
	Notifications *handler.NotificationHandler
	WS            *ws.Handler

	AuthMiddleware *middleware.AuthMiddleware
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
	r.registerWS(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1.Register(api.Group("/v1"), v1.Handlers{
		Auth:          r.Auth,
		Progress:      r.Progress,
		Skills:        r.Skills,
		Interests:     r.Interests,
		Pods:          r.Pods,
		Meetings:      r.Meetings,
		Messages:      r.Messages,
		Notifications: r.Notifications,
	}, r.AuthMiddleware)
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.WS == nil || r.AuthMiddleware == nil {
		return
	}
	app.Get("/ws/notifications", r.WS.HandleNotificationsWS, r.AuthMiddleware.Middleware())
}
