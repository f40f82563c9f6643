package controller

import (
	"github.com/gofiber/fiber/v2"

	"commerce-agent-be/internal/dto"
	"commerce-agent-be/internal/pkg/serverutils"
	"commerce-agent-be/internal/service"
)

type ICartController interface {
	RegisterRoutes(r fiber.Router)
	Add(ctx *fiber.Ctx) error
	View(ctx *fiber.Ctx) error
	Remove(ctx *fiber.Ctx) error
	Checkout(ctx *fiber.Ctx) error
}

type cartController struct {
	service service.ICartService
}

func NewCartController(service service.ICartService) ICartController {
	return &cartController{service: service}
}

func (c *cartController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/cart")
	h.Post("/add", c.Add)
	h.Post("/view", c.View)
	h.Post("/remove", c.Remove)
	h.Post("/checkout", c.Checkout)
}

func (c *cartController) Add(ctx *fiber.Ctx) error {
	var request dto.CartAddRequest
	if err := ctx.BodyParser(&request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	return ctx.JSON(c.service.Add(ctx.Context(), &request))
}

func (c *cartController) View(ctx *fiber.Ctx) error {
	var request dto.SessionRequest
	if err := ctx.BodyParser(&request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	return ctx.JSON(c.service.View(ctx.Context(), &request))
}

func (c *cartController) Remove(ctx *fiber.Ctx) error {
	var request dto.CartRemoveRequest
	if err := ctx.BodyParser(&request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	return ctx.JSON(c.service.Remove(ctx.Context(), &request))
}

func (c *cartController) Checkout(ctx *fiber.Ctx) error {
	var request dto.SessionRequest
	if err := ctx.BodyParser(&request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	return ctx.JSON(c.service.Checkout(ctx.Context(), &request))
}
