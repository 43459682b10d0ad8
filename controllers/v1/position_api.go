package apiv1

import (
	"collab-backend/controllers"
	positionhandler "collab-backend/lib/position"
	apperrors "collab-backend/lib/utils/app-errors"
	"collab-backend/middleware"
	apimodels "collab-backend/models/api"
	positionapimodels "collab-backend/models/api/position"

	"github.com/gofiber/fiber/v2"
)

type positionApiController struct {
	controllers.BaseAPIController
}

func InitPositionApiRouters(app *fiber.App) {
	controller := positionApiController{}
	app.Route("position", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Post("", controller.create)
		router.Get("", controller.list)
		router.Get("project/:id", controller.listByProject)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Patch("", controller.update)
			idRoute.Delete("", controller.delete)
		})
	})
}

// @Summary Создание
// @Tags Позиция
// @Description Создание позиции в своем проекте
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 positionapimodels.PositionData	true	"request body"
// @Success 201 {object} apimodels.Response{data=positionapimodels.PositionView}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/position [post]
func (c *positionApiController) create(ctx *fiber.Ctx) error {
	var payload positionapimodels.PositionData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := positionhandler.Instance.Create(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendErrorWith(ctx, c.GetLogger(ctx), err, "Ошибка создания позиции", map[apperrors.Kind]int{
			apperrors.KindNotAuthorized: fiber.StatusBadRequest,
		})
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(resp))
}

// @Summary Поиск
// @Tags Позиция
// @Description Открытые позиции чужих проектов
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   search       query    string    false  "поиск по названию"
// @Param   technologies query    []string  false  "ид технологий"
// @Param   match        query    string    false  "any или all"
// @Param   sort         query    string    false  "nameasc, namedesc, dateasc, datedesc"
// @Param   page         query    int       false  "страница"
// @Param   limit        query    int       false  "записей на странице"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]positionapimodels.PositionView}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/position [get]
func (c *positionApiController) list(ctx *fiber.Ctx) error {
	var filter positionapimodels.PositionFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("некорректные параметры запроса"))
	}
	if err := filter.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := positionhandler.Instance.ListAll(middleware.GetUserID(ctx), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка позиций")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Позиции проекта
// @Tags Позиция
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "project ID"
// @Success 200 {object} apimodels.Response{data=[]positionapimodels.PositionView}
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/position/project/{id} [get]
func (c *positionApiController) listByProject(ctx *fiber.Ctx) error {
	projectID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := positionhandler.Instance.ListByProject(projectID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения позиций проекта")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Получение по ИД
// @Tags Позиция
// @Description Только открытая позиция, с числом ожидающих откликов
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=positionapimodels.PositionView}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/position/{id} [get]
func (c *positionApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := positionhandler.Instance.GetByID(id)
	if err != nil {
		return c.SendErrorWith(ctx, c.GetLogger(ctx), err, "Ошибка получения позиции", map[apperrors.Kind]int{
			apperrors.KindNotFound: fiber.StatusBadRequest,
		})
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Обновление
// @Tags Позиция
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 positionapimodels.PositionData	true	"request body"
// @Success 200 {object} apimodels.Response{data=positionapimodels.PositionView}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/position/{id} [patch]
func (c *positionApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload positionapimodels.PositionData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := positionhandler.Instance.Update(id, middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendErrorWith(ctx, c.GetLogger(ctx), err, "Ошибка обновления позиции", map[apperrors.Kind]int{
			apperrors.KindNotAuthorized:        fiber.StatusForbidden,
			apperrors.KindInvalidTechnologySet: fiber.StatusUnauthorized,
		})
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Удаление
// @Tags Позиция
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/position/{id} [delete]
func (c *positionApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = positionhandler.Instance.Delete(id, middleware.GetUserID(ctx)); err != nil {
		return c.SendErrorWith(ctx, c.GetLogger(ctx), err, "Ошибка удаления позиции", map[apperrors.Kind]int{
			apperrors.KindNotFound: fiber.StatusBadRequest,
		})
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
