package controller

import (
	"errors"

	"clinic-intake-be/internal/dto"
	"clinic-intake-be/internal/pkg/serverutils"
	"clinic-intake-be/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	AdminLogin(ctx *fiber.Ctx) error
}

type authController struct {
	service  service.IAuthService
	validate *validator.Validate
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{
		service:  service,
		validate: validator.New(),
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")
	h.Post("/login", c.AdminLogin)
}

func (c *authController) AdminLogin(ctx *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if err := c.validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "username and password are required"))
	}

	res, err := c.service.AdminLogin(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid credentials"))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse(res))
}
