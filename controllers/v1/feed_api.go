package apiv1

import (
	"collab-backend/controllers"
	feedhandler "collab-backend/lib/feed"
	"collab-backend/middleware"
	apimodels "collab-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type feedApiController struct {
	controllers.BaseAPIController
}

func InitFeedApiRouters(app *fiber.App) {
	controller := feedApiController{}
	app.Route("feed", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Get("", controller.get)
	})
}

// @Summary Лента
// @Tags Лента
// @Description Новые проекты, подходящие позиции и ожидающие отклики на свои позиции
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=feedapimodels.Feed}
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/feed [get]
func (c *feedApiController) get(ctx *fiber.Ctx) error {
	resp, err := feedhandler.Instance.GetUserFeed(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения ленты")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
