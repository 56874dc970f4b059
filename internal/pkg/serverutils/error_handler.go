package serverutils

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware recovers panics and converts unhandled errors into
// the standard error envelope so handlers can simply return errors.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[PANIC] %s %s: %v", ctx.Method(), ctx.Path(), r)
				_ = ErrorResponse(ctx, fiber.StatusInternalServerError, "Internal server error")
			}
		}()

		err := ctx.Next()
		if err == nil {
			return nil
		}

		if fe, ok := err.(*fiber.Error); ok {
			return ErrorResponse(ctx, fe.Code, fe.Message)
		}
		return ErrorResponse(ctx, fiber.StatusInternalServerError, err.Error())
	}
}
