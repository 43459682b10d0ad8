package apiv1

import (
	"collab-backend/controllers"
	projecthandler "collab-backend/lib/project"
	"collab-backend/middleware"
	apimodels "collab-backend/models/api"
	projectapimodels "collab-backend/models/api/project"

	"github.com/gofiber/fiber/v2"
)

type projectApiController struct {
	controllers.BaseAPIController
}

func InitProjectApiRouters(app *fiber.App) {
	controller := projectApiController{}
	app.Route("project", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Post("", controller.create)
		router.Get("", controller.list)
		router.Get("user", controller.listByUser)
		router.Post("collaborator/remove", controller.removeCollaborator)
		router.Post("collaborator/leave", controller.leave)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Patch("", controller.update)
			idRoute.Delete("", controller.delete)
		})
	})
}

// @Summary Создание
// @Tags Проект
// @Description Создание проекта, владелец - текущий пользователь
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 projectapimodels.ProjectData	true	"request body"
// @Success 201 {object} apimodels.Response{data=projectapimodels.ProjectView}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/project [post]
func (c *projectApiController) create(ctx *fiber.Ctx) error {
	var payload projectapimodels.ProjectData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := projecthandler.Instance.Create(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания проекта")
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(resp))
}

// @Summary Список
// @Tags Проект
// @Description Список проектов, новые первыми
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   search    query    string  false  "поиск по названию"
// @Param   only_open query    bool    false  "только с открытыми позициями"
// @Param   page      query    int     false  "страница"
// @Param   limit     query    int     false  "записей на странице"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]projectapimodels.ProjectView}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/project [get]
func (c *projectApiController) list(ctx *fiber.Ctx) error {
	var filter projectapimodels.ProjectFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("некорректные параметры запроса"))
	}
	if err := filter.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := projecthandler.Instance.List(filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка проектов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Проекты пользователя
// @Tags Проект
// @Description Свои проекты и проекты, где пользователь участник
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=projectapimodels.ProjectsByUser}
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/project/user [get]
func (c *projectApiController) listByUser(ctx *fiber.Ctx) error {
	resp, err := projecthandler.Instance.ListByUser(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения проектов пользователя")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Получение по ИД
// @Tags Проект
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=projectapimodels.ProjectView}
// @Failure 401 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/project/{id} [get]
func (c *projectApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := projecthandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения проекта")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Обновление
// @Tags Проект
// @Description Обновление проекта владельцем, технологии позиций удалить нельзя
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 projectapimodels.ProjectData	true	"request body"
// @Success 200 {object} apimodels.Response{data=projectapimodels.ProjectView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/project/{id} [patch]
func (c *projectApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload projectapimodels.ProjectData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := projecthandler.Instance.Update(id, middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления проекта")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Удаление
// @Tags Проект
// @Description Удаление проекта вместе с позициями, откликами и участниками
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/project/{id} [delete]
func (c *projectApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = projecthandler.Instance.Delete(id, middleware.GetUserID(ctx)); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления проекта")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Исключить участника
// @Tags Проект
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 projectapimodels.CollaboratorRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/project/collaborator/remove [post]
func (c *projectApiController) removeCollaborator(ctx *fiber.Ctx) error {
	var payload projectapimodels.CollaboratorRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(true); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err := projecthandler.Instance.RemoveCollaborator(middleware.GetUserID(ctx), payload.ProjectID, payload.UserID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка исключения участника")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Покинуть проект
// @Tags Проект
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 projectapimodels.CollaboratorRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/project/collaborator/leave [post]
func (c *projectApiController) leave(ctx *fiber.Ctx) error {
	var payload projectapimodels.CollaboratorRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(false); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := projecthandler.Instance.LeaveProject(middleware.GetUserID(ctx), payload.ProjectID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выхода из проекта")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
