package app

import (
	"fmt"
	"log"
	"strings"

	"career-pods/internal/config"
	"career-pods/internal/delivery/http/handler"
	"career-pods/internal/delivery/http/middleware"
	"career-pods/internal/delivery/http/routes"
	"career-pods/internal/notify"
	"career-pods/internal/pkg/jwt"
	"career-pods/internal/repository"
	"career-pods/internal/usecase"
	"career-pods/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap builds the full application: resources, repositories, usecases,
// handlers, and the fiber app with its global middleware. The returned
// cleanup must run on shutdown.
func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	container, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	errMw := middleware.NewErrorMiddleware(logger, !cfg.App.IsProduction())
	f.Use(errMw.Middleware())
	f.Use(middleware.NewAccessLogMiddleware(logger).Middleware())

	registry := buildRegistry(container)
	registry.Register(f)

	cleanup := func() error { return container.Close() }
	return &App{Fiber: f, Container: container}, cleanup, nil
}

func buildRegistry(c *Container) *routes.Registry {
	jwtSvc := jwt.NewHMACService(
		c.Config.JWT.AccessSecret,
		c.Config.JWT.RefreshSecret,
		c.Config.JWT.AccessExpiresIn,
		c.Config.JWT.RefreshExpiresIn,
	)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(c.DB)
	skillRepo := repository.NewPostgresSkillRepository(c.DB)
	userSkillRepo := repository.NewPostgresUserSkillRepository(c.DB)
	progressRepo := repository.NewPostgresProgressRepository(c.DB)
	interestRepo := repository.NewPostgresCareerInterestRepository(c.DB)
	podRepo := repository.NewPostgresPodRepository(c.DB)
	meetingRepo := repository.NewPostgresMeetingRepository(c.DB)
	messageRepo := repository.NewPostgresMessageRepository(c.DB)
	notificationRepo := repository.NewPostgresNotificationRepository(c.DB)

	emitter := notify.NewEmitter(c.Logger,
		notify.NewPersistHook(notificationRepo),
		notify.NewPushHook(c.Hub),
	)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	progressUC := usecase.NewProgressUsecase(progressRepo, userSkillRepo, interestRepo, c.Cache, emitter)
	skillUC := usecase.NewSkillUsecase(c.DB, skillRepo, userSkillRepo, progressRepo, c.Cache)
	interestUC := usecase.NewInterestUsecase(interestRepo)
	podUC := usecase.NewPodUsecase(podRepo)
	meetingUC := usecase.NewMeetingUsecase(meetingRepo, podRepo, emitter)
	messageUC := usecase.NewMessageUsecase(messageRepo, podRepo, emitter)
	notificationUC := usecase.NewNotificationUsecase(notificationRepo)

	return &routes.Registry{
		Health:         handler.NewHealthHandler(c.DB),
		Auth:           handler.NewAuthHandler(authUC),
		Progress:       handler.NewProgressHandler(progressUC),
		Skills:         handler.NewSkillHandler(skillUC),
		Interests:      handler.NewInterestHandler(interestUC),
		Pods:           handler.NewPodHandler(podUC),
		Meetings:       handler.NewMeetingHandler(meetingUC),
		Messages:       handler.NewMessageHandler(messageUC),
		Notifications:  handler.NewNotificationHandler(notificationUC),
		WS:             ws.NewHandler(c.Hub, c.Logger),
		AuthMiddleware: authMw,
	}
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
