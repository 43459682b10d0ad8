package middleware

import (
	authutils "collab-backend/lib/utils/auth-utils"

	"github.com/gofiber/fiber/v2"
)

func GetUserID(ctx *fiber.Ctx) string {
	return claimString(ctx, "sub")
}

func GetUsername(ctx *fiber.Ctx) string {
	return claimString(ctx, "username")
}

func GetRawToken(ctx *fiber.Ctx) string {
	return authutils.GetRawToken(ctx)
}

func claimString(ctx *fiber.Ctx, key string) string {
	value, ok := authutils.GetClaims(ctx)[key].(string)
	if !ok {
		return ""
	}
	return value
}
