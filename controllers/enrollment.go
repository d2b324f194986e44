package controllers

import (
	"healthtrack/services"

	"github.com/gofiber/fiber/v2"
)

type EnrollmentController struct {
	enrollments *services.EnrollmentService
}

func NewEnrollmentController(enrollments *services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{enrollments: enrollments}
}

func (ec *EnrollmentController) List(c *fiber.Ctx) error {
	enrollments, err := ec.enrollments.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(enrollments)
}

func (ec *EnrollmentController) Create(c *fiber.Ctx) error {
	reqData := c.Locals("validatedEnrollment").(*services.EnrollmentInput)
	enrollment, err := ec.enrollments.Create(c.UserContext(), *reqData)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(enrollment)
}

// CreateBulk answers 201 with the enrollments that could be created, which may be
// fewer than requested.
func (ec *EnrollmentController) CreateBulk(c *fiber.Ctx) error {
	reqData := c.Locals("validatedBulkEnrollment").(*services.BulkEnrollmentInput)
	enrollments, err := ec.enrollments.CreateBulk(c.UserContext(), *reqData)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(enrollments)
}

func (ec *EnrollmentController) Delete(c *fiber.Ctx) error {
	if err := ec.enrollments.Delete(c.UserContext(), c.Locals("id").(uint)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteByPair handles DELETE /enrollments/client/:clientId/program/:programId
func (ec *EnrollmentController) DeleteByPair(c *fiber.Ctx) error {
	clientID := c.Locals("clientId").(uint)
	programID := c.Locals("programId").(uint)
	if err := ec.enrollments.DeleteByPair(c.UserContext(), clientID, programID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
