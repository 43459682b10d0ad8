package middleware

import (
	"collab-backend/config"
	"collab-backend/fiberlog"
	authhandler "collab-backend/lib/auth"
	authutils "collab-backend/lib/utils/auth-utils"
	apimodels "collab-backend/models/api"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
)

func AuthorizationRequired() fiber.Handler {
	return jwtware.New(jwtware.Config{
		Claims: jwt.MapClaims{},
		SigningKey: jwtware.SigningKey{
			JWTAlg: "HS256",
			Key:    []byte(config.Conf.Auth.JWTSecret),
		},
		TokenLookup: "header:Authorization,cookie:" + config.Conf.Auth.CookieName,
		AuthScheme:  "Bearer",
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("требуется авторизация"))
		},
		SuccessHandler: checkTokenActive,
	})
}

// checkTokenActive токен должен быть в bearer_tokens, после выхода он отзывается
func checkTokenActive(ctx *fiber.Ctx) error {
	active, err := authhandler.Instance.IsTokenActive(authutils.GetRawToken(ctx))
	if err != nil {
		log.WithError(err).Error("ошибка проверки токена")
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError("ошибка проверки токена"))
	}
	if !active {
		return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("сессия завершена"))
	}
	ctx.Locals(fiberlog.TagUserID, GetUserID(ctx))
	return ctx.Next()
}
