package authutils

import (
	"collab-backend/config"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func GetToken(userID, username, email string) (tokenString string, expiresAt time.Time, err error) {
	now := time.Now()
	expiresAt = now.Add(time.Second * time.Duration(config.Conf.Auth.JWTExpireInSec))
	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"email":    email,
		"jti":      uuid.NewString(),
		"exp":      expiresAt.Unix(),
		"iat":      now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err = token.SignedString([]byte(config.Conf.Auth.JWTSecret))
	return tokenString, expiresAt, err
}

func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	return token.Claims.(jwt.MapClaims)
}

// GetRawToken исходная строка токена текущего запроса
func GetRawToken(ctx *fiber.Ctx) string {
	token, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return ""
	}
	return token.Raw
}
