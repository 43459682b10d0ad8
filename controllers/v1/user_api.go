package apiv1

import (
	"collab-backend/config"
	"collab-backend/controllers"
	authhandler "collab-backend/lib/auth"
	userhandler "collab-backend/lib/user"
	"collab-backend/middleware"
	apimodels "collab-backend/models/api"
	authapimodels "collab-backend/models/api/auth"
	userapimodels "collab-backend/models/api/user"
	"time"

	"github.com/gofiber/fiber/v2"
)

type userApiController struct {
	controllers.BaseAPIController
}

func InitUserApiRouters(app *fiber.App) {
	controller := userApiController{}
	app.Route("user", func(router fiber.Router) {
		router.Post("register", controller.register)
		router.Post("login", controller.login)
		router.Post("forgot-password", controller.forgotPassword)
		router.Post("password-reset/:token", controller.passwordReset)

		router.Use(middleware.AuthorizationRequired())
		router.Get("", controller.profile)
		router.Patch("", controller.updateDetails)
		router.Delete("", controller.delete)
		router.Patch("username", controller.updateUsername)
		router.Patch("email", controller.updateEmail)
		router.Patch("password", controller.updatePassword)
		router.Get("logout", controller.logout)
		router.Get("logout/all", controller.logoutAll)
	})
}

func (c *userApiController) setAuthCookie(ctx *fiber.Ctx, token string, expires time.Time) {
	secure := config.Conf.Auth.CookieSecure != nil && *config.Conf.Auth.CookieSecure
	ctx.Cookie(&fiber.Cookie{
		Name:     config.Conf.Auth.CookieName,
		Value:    token,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (c *userApiController) tokenExpires() time.Time {
	return time.Now().Add(time.Duration(config.Conf.Auth.JWTExpireInSec) * time.Second)
}

// @Summary Регистрация
// @Tags Пользователь
// @Description Регистрация нового пользователя, в ответе пользователь и токен
// @Param	body body	 userapimodels.RegisterRequest	true	"request body"
// @Success 201 {object} apimodels.Response{data=authapimodels.JWTResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/user/register [post]
func (c *userApiController) register(ctx *fiber.Ctx) error {
	var payload userapimodels.RegisterRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := userhandler.Instance.Register(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка регистрации пользователя")
	}
	c.setAuthCookie(ctx, resp.Token, c.tokenExpires())
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(resp))
}

// @Summary Вход
// @Tags Пользователь
// @Description Аутентификация по почте и паролю
// @Param	body body	 authapimodels.LoginRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=authapimodels.JWTResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/user/login [post]
func (c *userApiController) login(ctx *fiber.Ctx) error {
	var payload authapimodels.LoginRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := authhandler.Instance.Login(payload.Email, payload.Password)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка входа")
	}
	c.setAuthCookie(ctx, resp.Token, c.tokenExpires())
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Запрос сброса пароля
// @Tags Пользователь
// @Description Отправляет ссылку для сброса пароля, ответ не зависит от наличия почты
// @Param	body body	 authapimodels.PasswordRecovery	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/user/forgot-password [post]
func (c *userApiController) forgotPassword(ctx *fiber.Ctx) error {
	var payload authapimodels.PasswordRecovery
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := userhandler.Instance.ForgotPassword(payload.Email); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отправки ссылки для сброса пароля")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Сброс пароля
// @Tags Пользователь
// @Description Установка нового пароля по коду из письма
// @Param   token          		path    string  				    	true         "reset code"
// @Param	body body	 authapimodels.PasswordResetRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/user/password-reset/{token} [post]
func (c *userApiController) passwordReset(ctx *fiber.Ctx) error {
	code, err := c.GetIDByKey(ctx, "token")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload authapimodels.PasswordResetRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = userhandler.Instance.PasswordReset(code, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сброса пароля")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Профиль
// @Tags Пользователь
// @Description Профиль текущего пользователя со своими проектами и участием в чужих
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=userapimodels.ProfileView}
// @Failure 401 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/user [get]
func (c *userApiController) profile(ctx *fiber.Ctx) error {
	resp, err := userhandler.Instance.GetProfile(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения профиля")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Обновление профиля
// @Tags Пользователь
// @Description Обновление описания, ссылок, технологий и языков
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 userapimodels.UpdateDetailsRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=userapimodels.UserView}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/user [patch]
func (c *userApiController) updateDetails(ctx *fiber.Ctx) error {
	var payload userapimodels.UpdateDetailsRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := userhandler.Instance.UpdateDetails(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления профиля")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Смена имени пользователя
// @Tags Пользователь
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 userapimodels.UpdateUsernameRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/user/username [patch]
func (c *userApiController) updateUsername(ctx *fiber.Ctx) error {
	var payload userapimodels.UpdateUsernameRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := userhandler.Instance.UpdateUsername(middleware.GetUserID(ctx), payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка смены имени пользователя")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Смена почты
// @Tags Пользователь
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 userapimodels.UpdateEmailRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/user/email [patch]
func (c *userApiController) updateEmail(ctx *fiber.Ctx) error {
	var payload userapimodels.UpdateEmailRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := userhandler.Instance.UpdateEmail(middleware.GetUserID(ctx), payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка смены почты")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Смена пароля
// @Tags Пользователь
// @Description Смена пароля, остальные сессии пользователя завершаются
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 userapimodels.UpdatePasswordRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/user/password [patch]
func (c *userApiController) updatePassword(ctx *fiber.Ctx) error {
	var payload userapimodels.UpdatePasswordRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err := userhandler.Instance.UpdatePassword(middleware.GetUserID(ctx), middleware.GetRawToken(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка смены пароля")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление пользователя
// @Tags Пользователь
// @Description Удаление пользователя вместе с его проектами и откликами
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/user [delete]
func (c *userApiController) delete(ctx *fiber.Ctx) error {
	if err := userhandler.Instance.Delete(middleware.GetUserID(ctx)); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления пользователя")
	}
	ctx.ClearCookie(config.Conf.Auth.CookieName)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Выход
// @Tags Пользователь
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/user/logout [get]
func (c *userApiController) logout(ctx *fiber.Ctx) error {
	if err := authhandler.Instance.Logout(middleware.GetRawToken(ctx)); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выхода")
	}
	ctx.ClearCookie(config.Conf.Auth.CookieName)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Выход со всех устройств
// @Tags Пользователь
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/user/logout/all [get]
func (c *userApiController) logoutAll(ctx *fiber.Ctx) error {
	if err := authhandler.Instance.LogoutAll(middleware.GetUserID(ctx)); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выхода")
	}
	ctx.ClearCookie(config.Conf.Auth.CookieName)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
