package serverutils

import "github.com/gofiber/fiber/v2"

type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func ErrorResponse(code int, message string) fiber.Map {
	return fiber.Map{"error": APIError{Code: code, Message: message}}
}

func SuccessResponse(data interface{}) fiber.Map {
	return fiber.Map{"data": data}
}

// ErrorHandlerMiddleware converts panics and unhandled errors into a JSON
// envelope so no raw stack trace ever reaches a client.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				_ = ctx.Status(fiber.StatusInternalServerError).
					JSON(ErrorResponse(fiber.StatusInternalServerError, "internal server error"))
			}
		}()
		return ctx.Next()
	}
}
