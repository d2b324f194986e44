package routers

import (
	"healthtrack/controllers"
	"healthtrack/validators"

	"github.com/gofiber/fiber/v2"
)

// SetupClientRoutes mounts /clients on router. /search must precede /:id.
func SetupClientRoutes(router fiber.Router, cc *controllers.ClientController) {
	clientGroup := router.Group("/clients")

	clientGroup.Get("/", cc.List)
	clientGroup.Get("/search", cc.Search)
	clientGroup.Get("/:id", validators.IDParam("id", "Client"), cc.Get)
	clientGroup.Post("/", validators.ClientBody(), cc.Create)
	clientGroup.Put("/:id", validators.IDParam("id", "Client"), validators.ClientBody(), cc.Update)
	clientGroup.Delete("/:id", validators.IDParam("id", "Client"), cc.Delete)
}
