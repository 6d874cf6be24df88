package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors escaping a handler into plain-text
// responses. Internal error text stays generic so storage or model details
// never leak to the client.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).SendString(fiberErr.Message)
		}

		return ctx.Status(fiber.StatusInternalServerError).
			SendString("Error: internal server error")
	}
}
