package controllers

import (
	"healthtrack/models"
	"healthtrack/services"

	"github.com/gofiber/fiber/v2"
)

// programDetail always carries the enrollments key, even when there are none.
type programDetail struct {
	*models.Program
	Enrollments []models.Enrollment `json:"enrollments"`
}

type ProgramController struct {
	programs *services.ProgramService
}

func NewProgramController(programs *services.ProgramService) *ProgramController {
	return &ProgramController{programs: programs}
}

func (pc *ProgramController) List(c *fiber.Ctx) error {
	programs, err := pc.programs.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(programs)
}

func (pc *ProgramController) Get(c *fiber.Ctx) error {
	program, err := pc.programs.Get(c.UserContext(), c.Locals("id").(uint))
	if err != nil {
		return err
	}
	return c.JSON(programDetail{Program: program, Enrollments: program.Enrollments})
}

func (pc *ProgramController) Create(c *fiber.Ctx) error {
	reqData := c.Locals("validatedProgram").(*services.ProgramInput)
	program, err := pc.programs.Create(c.UserContext(), *reqData)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(program)
}

func (pc *ProgramController) Update(c *fiber.Ctx) error {
	reqData := c.Locals("validatedProgram").(*services.ProgramInput)
	program, err := pc.programs.Update(c.UserContext(), c.Locals("id").(uint), *reqData)
	if err != nil {
		return err
	}
	return c.JSON(program)
}

func (pc *ProgramController) Delete(c *fiber.Ctx) error {
	if err := pc.programs.Delete(c.UserContext(), c.Locals("id").(uint)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
