package routers

import (
	"healthtrack/config"
	"healthtrack/controllers"
	"healthtrack/middleware"
	"healthtrack/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// Services bundles the domain services the HTTP surface dispatches to.
type Services struct {
	Programs    *services.ProgramService
	Clients     *services.ClientService
	Enrollments *services.EnrollmentService
	Stats       *services.StatsService
}

// NewApp builds the fiber app with middleware and every route mounted.
func NewApp(cfg *config.Config, log *zap.Logger, svc Services) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "HealthTrack",
		ErrorHandler:          middleware.ErrorHandler(log),
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))
	app.Use(middleware.RequestLogger(log))

	// Health check route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "HealthTrack API is running"})
	})

	api := app.Group(cfg.APIPrefix)
	if cfg.AuthEnabled {
		api.Use(middleware.JWTMiddleware(cfg.JWTKey))
	}

	SetupProgramRoutes(api, controllers.NewProgramController(svc.Programs))
	SetupClientRoutes(api, controllers.NewClientController(svc.Clients))
	SetupEnrollmentRoutes(api, controllers.NewEnrollmentController(svc.Enrollments))
	api.Get("/stats", controllers.NewStatsController(svc.Stats).Dashboard)

	return app
}
