package routers

import (
	"healthtrack/controllers"
	"healthtrack/validators"

	"github.com/gofiber/fiber/v2"
)

// SetupProgramRoutes mounts /programs on router
func SetupProgramRoutes(router fiber.Router, pc *controllers.ProgramController) {
	programGroup := router.Group("/programs")

	programGroup.Get("/", pc.List)
	programGroup.Get("/:id", validators.IDParam("id", "Program"), pc.Get)
	programGroup.Post("/", validators.ProgramBody(), pc.Create)
	programGroup.Put("/:id", validators.IDParam("id", "Program"), validators.ProgramBody(), pc.Update)
	programGroup.Delete("/:id", validators.IDParam("id", "Program"), pc.Delete)
}
