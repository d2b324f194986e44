package routers

import (
	"healthtrack/controllers"
	"healthtrack/validators"

	"github.com/gofiber/fiber/v2"
)

// SetupEnrollmentRoutes mounts /enrollments on router
func SetupEnrollmentRoutes(router fiber.Router, ec *controllers.EnrollmentController) {
	enrollmentGroup := router.Group("/enrollments")

	enrollmentGroup.Get("/", ec.List)
	enrollmentGroup.Post("/", validators.EnrollmentBody(), ec.Create)
	enrollmentGroup.Post("/bulk", validators.BulkEnrollmentBody(), ec.CreateBulk)
	enrollmentGroup.Delete("/:id", validators.IDParam("id", "Enrollment"), ec.Delete)

	// Remove a client from a program
	enrollmentGroup.Delete("/client/:clientId/program/:programId",
		validators.IDParam("clientId", "Client"),
		validators.IDParam("programId", "Program"),
		ec.DeleteByPair,
	)
}
