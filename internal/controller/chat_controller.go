package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"commerce-agent-be/internal/dto"
	"commerce-agent-be/internal/pkg/serverutils"
	"commerce-agent-be/internal/service"
	"commerce-agent-be/pkg/vectordb"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	Image(ctx *fiber.Ctx) error
	ResetSession(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.Chat)
	r.Post("/image", c.Image)
	r.Post("/session/reset", c.ResetSession)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var request dto.ChatRequest
	if err := ctx.BodyParser(&request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}

	res, err := c.service.Chat(ctx.Context(), &request)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(res)
}

func (c *chatController) Image(ctx *fiber.Ctx) error {
	var request dto.ImageRequest
	if err := ctx.BodyParser(&request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}

	res, err := c.service.Image(ctx.Context(), &request)
	if err != nil {
		if errors.Is(err, service.ErrMissingImage) || errors.Is(err, vectordb.ErrInvalidDataURL) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(res)
}

func (c *chatController) ResetSession(ctx *fiber.Ctx) error {
	var request dto.SessionRequest
	if err := ctx.BodyParser(&request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	return ctx.JSON(c.service.ResetSession(request.SessionID))
}
