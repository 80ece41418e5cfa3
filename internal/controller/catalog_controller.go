package controller

import (
	"clinic-intake-be/internal/dto"
	"clinic-intake-be/internal/pkg/serverutils"
	"clinic-intake-be/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICatalogController interface {
	RegisterRoutes(r fiber.Router, adminGuard fiber.Handler)
	GetBodySites(ctx *fiber.Ctx) error
	CreateBodySite(ctx *fiber.Ctx) error
	GetSymptoms(ctx *fiber.Ctx) error
	CreateSymptom(ctx *fiber.Ctx) error
	GetIntakes(ctx *fiber.Ctx) error
}

type catalogController struct {
	service  service.ICatalogService
	validate *validator.Validate
}

func NewCatalogController(service service.ICatalogService) ICatalogController {
	return &catalogController{
		service:  service,
		validate: validator.New(),
	}
}

func (c *catalogController) RegisterRoutes(r fiber.Router, adminGuard fiber.Handler) {
	h := r.Group("/admin", adminGuard)
	h.Get("/body-sites", c.GetBodySites)
	h.Post("/body-sites", c.CreateBodySite)
	h.Get("/symptoms", c.GetSymptoms)
	h.Post("/symptoms", c.CreateSymptom)
	h.Get("/intakes", c.GetIntakes)
}

func (c *catalogController) GetBodySites(ctx *fiber.Ctx) error {
	var parentId *uuid.UUID
	if raw := ctx.Query("parent_id", ""); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid parent_id"))
		}
		parentId = &id
	}

	res, err := c.service.ListBodySites(ctx.Context(), parentId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse(res))
}

func (c *catalogController) CreateBodySite(ctx *fiber.Ctx) error {
	var req dto.CreateBodySiteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := c.validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.CreateBodySite(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse(res))
}

func (c *catalogController) GetSymptoms(ctx *fiber.Ctx) error {
	raw := ctx.Query("body_site_id", "")
	if raw == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "body_site_id parameter is required"))
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid body_site_id"))
	}

	res, err := c.service.ListSymptoms(ctx.Context(), id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse(res))
}

func (c *catalogController) CreateSymptom(ctx *fiber.Ctx) error {
	var req dto.CreateSymptomRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := c.validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.CreateSymptom(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse(res))
}

func (c *catalogController) GetIntakes(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 50)

	res, err := c.service.ListIntakes(ctx.Context(), limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse(res))
}
