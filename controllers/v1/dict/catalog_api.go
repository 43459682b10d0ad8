package dict

import (
	"collab-backend/controllers"
	catalogprovider "collab-backend/lib/dicts/catalog"
	apimodels "collab-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type catalogDictApiController struct {
	controllers.BaseAPIController
}

func InitCatalogDictApiRouters(app *fiber.App) {
	controller := catalogDictApiController{}
	app.Get("language", controller.languages)
	app.Get("role", controller.roles)
	app.Get("level", controller.levels)
}

// @Summary Список языков
// @Tags Справочник
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.DictView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/language [get]
func (c *catalogDictApiController) languages(ctx *fiber.Ctx) error {
	list, err := catalogprovider.Instance.Languages()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка языков")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Список ролей
// @Tags Справочник
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.DictView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/role [get]
func (c *catalogDictApiController) roles(ctx *fiber.Ctx) error {
	list, err := catalogprovider.Instance.Roles()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка ролей")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Список уровней
// @Tags Справочник
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.DictView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/level [get]
func (c *catalogDictApiController) levels(ctx *fiber.Ctx) error {
	list, err := catalogprovider.Instance.Levels()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка уровней")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
