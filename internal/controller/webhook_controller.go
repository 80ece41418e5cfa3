package controller

import (
	"clinic-intake-be/internal/dto"
	"clinic-intake-be/internal/pkg/serverutils"
	"clinic-intake-be/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type IWebhookController interface {
	RegisterRoutes(r fiber.Router)
	HandleMessage(ctx *fiber.Ctx) error
}

type webhookController struct {
	service  service.IIntakeService
	validate *validator.Validate
}

func NewWebhookController(service service.IIntakeService) IWebhookController {
	return &webhookController{
		service:  service,
		validate: validator.New(),
	}
}

func (c *webhookController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/webhook")
	h.Post("/message", c.HandleMessage)
}

// HandleMessage is the turn endpoint: one inbound message in, exactly one
// reply out. Dialog-level problems never become HTTP errors; only a
// malformed envelope does.
func (c *webhookController) HandleMessage(ctx *fiber.Ctx) error {
	var req dto.InboundMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := c.validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "from and text are required"))
	}

	reply := c.service.HandleMessage(ctx.Context(), req.From, req.Text)
	return ctx.JSON(dto.InboundMessageResponse{Reply: reply})
}
