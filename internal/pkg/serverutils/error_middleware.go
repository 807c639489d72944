package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"rag-chat-be/internal/pkg/logger"
)

// ErrorHandlerMiddleware converts handler errors into the JSON envelope.
// Fiber errors keep their code; anything else becomes a 500 with a generic
// message so internals never leak to callers.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		msg := "Internal server error"

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			msg = fiberErr.Message
		}

		log.Error("http", "request failed", map[string]interface{}{
			"path":   ctx.Path(),
			"method": ctx.Method(),
			"code":   code,
			"error":  err.Error(),
		})

		return ctx.Status(code).JSON(ErrorResponse(code, msg))
	}
}
