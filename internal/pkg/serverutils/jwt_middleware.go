package serverutils

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JwtMiddleware rejects requests without a valid bearer token and stores the
// actor identity in ctx.Locals("actor_id") / ctx.Locals("role").
func JwtMiddleware(ctx *fiber.Ctx) error {
	claims, errMsg := parseBearer(ctx)
	if claims == nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": errMsg})
	}

	ctx.Locals("actor_id", claims["actor_id"])
	ctx.Locals("role", claims["role"])
	return ctx.Next()
}

// OptionalJwtMiddleware sets the actor identity when a valid token is
// present but lets anonymous requests through. Downstream authorization
// decides what an unauthenticated caller may do.
func OptionalJwtMiddleware(ctx *fiber.Ctx) error {
	if claims, _ := parseBearer(ctx); claims != nil {
		ctx.Locals("actor_id", claims["actor_id"])
		ctx.Locals("role", claims["role"])
	}
	return ctx.Next()
}

func parseBearer(ctx *fiber.Ctx) (jwt.MapClaims, string) {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return nil, "Missing token"
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, "Invalid token"
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, "Invalid claims"
	}
	return claims, ""
}

// ActorID reads the authenticated actor id set by the JWT middleware.
// Returns "" for anonymous callers.
func ActorID(ctx *fiber.Ctx) string {
	if v, ok := ctx.Locals("actor_id").(string); ok {
		return v
	}
	return ""
}
