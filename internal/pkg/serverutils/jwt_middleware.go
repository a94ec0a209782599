package serverutils

import (
	"chimera-chat-be/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
)

// NewJwtMiddleware guards protected routes. The token subject (user email)
// is stored in Locals("subject") for downstream handlers.
func NewJwtMiddleware(tokens *token.Service) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing token"})
		}
		tokenStr := authHeader[7:]

		subject, err := tokens.Validate(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
		}

		ctx.Locals("subject", subject)
		return ctx.Next()
	}
}
