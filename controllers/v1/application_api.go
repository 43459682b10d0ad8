package apiv1

import (
	"collab-backend/controllers"
	applicationhandler "collab-backend/lib/application"
	apperrors "collab-backend/lib/utils/app-errors"
	"collab-backend/middleware"
	apimodels "collab-backend/models/api"
	applicationapimodels "collab-backend/models/api/application"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

type applicationApiController struct {
	controllers.BaseAPIController
}

func InitApplicationApiRouters(app *fiber.App) {
	controller := applicationApiController{}
	app.Route("application", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Post("", controller.create)
		router.Post("accept", controller.accept)
		router.Post("decline", controller.decline)
		router.Delete("revoke", controller.revoke)
		router.Get(":position/export", controller.export)
		router.Get(":position", controller.listByPosition)
	})
}

// @Summary Отклик
// @Tags Отклик
// @Description Отклик текущего пользователя на открытую позицию
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 applicationapimodels.ApplyRequest	true	"request body"
// @Success 201 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application [post]
func (c *applicationApiController) create(ctx *fiber.Ctx) error {
	var payload applicationapimodels.ApplyRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := applicationhandler.Instance.Create(middleware.GetUserID(ctx), payload.PositionID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания отклика")
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(resp))
}

// @Summary Кандидаты позиции
// @Tags Отклик
// @Description Отклики на свою позицию по статусу, по умолчанию pending
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   position          		path    string  				    	true         "position ID"
// @Param   status    query    string  false  "pending, accepted, declined"
// @Success 200 {object} apimodels.Response{data=[]applicationapimodels.ApplicantView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/{position} [get]
func (c *applicationApiController) listByPosition(ctx *fiber.Ctx) error {
	positionID, err := c.GetIDByKey(ctx, "position")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	status, err := applicationapimodels.ParseStatus(ctx.Query("status"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := applicationhandler.Instance.ListByPosition(middleware.GetUserID(ctx), positionID, status)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения откликов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Выгрузка кандидатов
// @Tags Отклик
// @Description Выгрузка откликов на свою позицию в Excel
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   position          		path    string  				    	true         "position ID"
// @Param   status    query    string  false  "pending, accepted, declined"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/{position}/export [get]
func (c *applicationApiController) export(ctx *fiber.Ctx) error {
	positionID, err := c.GetIDByKey(ctx, "position")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	status, err := applicationapimodels.ParseStatus(ctx.Query("status"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	data, err := applicationhandler.Instance.Export(middleware.GetUserID(ctx), positionID, status)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки кандидатов в Excel")
	}
	fileName := fmt.Sprintf("applicants-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}

// @Summary Принять
// @Tags Отклик
// @Description Принятие отклика владельцем, кандидат становится участником проекта
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 applicationapimodels.ResolveRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/accept [post]
func (c *applicationApiController) accept(ctx *fiber.Ctx) error {
	var payload applicationapimodels.ResolveRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err := applicationhandler.Instance.Accept(middleware.GetUserID(ctx), payload.PositionID, payload.ApplicantID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка принятия отклика")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отклонить
// @Tags Отклик
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 applicationapimodels.ResolveRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/decline [post]
func (c *applicationApiController) decline(ctx *fiber.Ctx) error {
	var payload applicationapimodels.ResolveRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err := applicationhandler.Instance.Decline(middleware.GetUserID(ctx), payload.PositionID, payload.ApplicantID)
	if err != nil {
		return c.SendErrorWith(ctx, c.GetLogger(ctx), err, "Ошибка отклонения отклика", map[apperrors.Kind]int{
			apperrors.KindNotAuthorized: fiber.StatusNotFound,
			apperrors.KindConflict:      fiber.StatusNotFound,
		})
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отозвать
// @Tags Отклик
// @Description Отзыв своего ожидающего отклика
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id    query    string  true  "application ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/revoke [delete]
func (c *applicationApiController) revoke(ctx *fiber.Ctx) error {
	id := ctx.Query("id")
	if id == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан отклик"))
	}
	err := applicationhandler.Instance.Revoke(middleware.GetUserID(ctx), id)
	if err != nil {
		return c.SendErrorWith(ctx, c.GetLogger(ctx), err, "Ошибка отзыва отклика", map[apperrors.Kind]int{
			apperrors.KindNotAuthorized: fiber.StatusUnauthorized,
		})
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
