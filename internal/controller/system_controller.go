package controller

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"commerce-agent-be/internal/dto"
	"commerce-agent-be/internal/pkg/serverutils"
)

// VectorIndexHealth is the slice of the vector index client the health
// endpoint consumes.
type VectorIndexHealth interface {
	TotalCount(ctx context.Context) (int64, error)
	ServerVersion(ctx context.Context) (string, error)
}

type ISystemController interface {
	RegisterRoutes(r fiber.Router)
	Awake(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type systemController struct {
	index VectorIndexHealth
}

func NewSystemController(index VectorIndexHealth) ISystemController {
	return &systemController{index: index}
}

func (c *systemController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Awake)
	r.Get("/health", c.Health)
}

func (c *systemController) Awake(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.ServerStatusResponse{Server: "Active"})
}

func (c *systemController) Health(ctx *fiber.Ctx) error {
	count, err := c.index.TotalCount(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	version, err := c.index.ServerVersion(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(dto.HealthResponse{
		OK:              true,
		VectorDBVersion: version,
		Count:           count,
	})
}
