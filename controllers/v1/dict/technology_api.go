package dict

import (
	"collab-backend/controllers"
	technologyprovider "collab-backend/lib/dicts/technology"
	"collab-backend/middleware"
	apimodels "collab-backend/models/api"
	dictapimodels "collab-backend/models/api/dict"

	"github.com/gofiber/fiber/v2"
)

type technologyDictApiController struct {
	controllers.BaseAPIController
}

func InitTechnologyDictApiRouters(app *fiber.App) {
	controller := technologyDictApiController{}
	app.Route("technology", func(router fiber.Router) {
		router.Get("", controller.list)

		router.Use(middleware.AuthorizationRequired())
		router.Post("", controller.request)
		router.Get("project/:id", controller.listByProject)
	})
}

// @Summary Список технологий
// @Tags Справочник. Технологии
// @Description Подтвержденные технологии
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.DictView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/technology [get]
func (c *technologyDictApiController) list(ctx *fiber.Ctx) error {
	list, err := technologyprovider.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка технологий")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Технологии проекта
// @Tags Справочник. Технологии
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "project ID"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.DictView}
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/technology/project/{id} [get]
func (c *technologyDictApiController) listByProject(ctx *fiber.Ctx) error {
	projectID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := technologyprovider.Instance.ListByProject(projectID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения технологий проекта")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Предложить технологию
// @Tags Справочник. Технологии
// @Description Новая технология доступна после подтверждения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.TechnologyRequest	true	"request body"
// @Success 201 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/technology [post]
func (c *technologyDictApiController) request(ctx *fiber.Ctx) error {
	var payload dictapimodels.TechnologyRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := technologyprovider.Instance.Request(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка добавления технологии")
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(id))
}
