package controllers

import (
	"healthtrack/models"
	"healthtrack/services"

	"github.com/gofiber/fiber/v2"
)

type clientDetail struct {
	*models.Client
	Enrollments []models.Enrollment `json:"enrollments"`
}

type ClientController struct {
	clients *services.ClientService
}

func NewClientController(clients *services.ClientService) *ClientController {
	return &ClientController{clients: clients}
}

func (cc *ClientController) List(c *fiber.Ctx) error {
	clients, err := cc.clients.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(clients)
}

// Search handles GET /clients/search?name=
func (cc *ClientController) Search(c *fiber.Ctx) error {
	clients, err := cc.clients.Search(c.UserContext(), c.Query("name"))
	if err != nil {
		return err
	}
	return c.JSON(clients)
}

func (cc *ClientController) Get(c *fiber.Ctx) error {
	client, err := cc.clients.Get(c.UserContext(), c.Locals("id").(uint))
	if err != nil {
		return err
	}
	return c.JSON(clientDetail{Client: client, Enrollments: client.Enrollments})
}

func (cc *ClientController) Create(c *fiber.Ctx) error {
	reqData := c.Locals("validatedClient").(*services.ClientInput)
	client, err := cc.clients.Create(c.UserContext(), *reqData)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

func (cc *ClientController) Update(c *fiber.Ctx) error {
	reqData := c.Locals("validatedClient").(*services.ClientInput)
	client, err := cc.clients.Update(c.UserContext(), c.Locals("id").(uint), *reqData)
	if err != nil {
		return err
	}
	return c.JSON(client)
}

// Delete removes the client and, before it, all of its enrollments.
func (cc *ClientController) Delete(c *fiber.Ctx) error {
	if err := cc.clients.Delete(c.UserContext(), c.Locals("id").(uint)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
