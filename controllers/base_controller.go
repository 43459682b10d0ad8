package controllers

import (
	"collab-backend/fiberlog"
	apperrors "collab-backend/lib/utils/app-errors"
	apimodels "collab-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

var defaultStatuses = map[apperrors.Kind]int{
	apperrors.KindValidation:           fiber.StatusBadRequest,
	apperrors.KindUnauthenticated:      fiber.StatusUnauthorized,
	apperrors.KindNotAuthorized:        fiber.StatusForbidden,
	apperrors.KindNotFound:             fiber.StatusNotFound,
	apperrors.KindConflict:             fiber.StatusConflict,
	apperrors.KindUnprocessable:        fiber.StatusUnprocessableEntity,
	apperrors.KindNoVacancy:            fiber.StatusNotFound,
	apperrors.KindInvalidTechnologySet: fiber.StatusBadRequest,
}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	logger := log.
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
	if userID, ok := ctx.Locals(fiberlog.TagUserID).(string); ok && userID != "" {
		logger = logger.WithField("user_id", userID)
	}
	return logger
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	return c.GetIDByKey(ctx, "id")
}

func (c *BaseAPIController) GetIDByKey(ctx *fiber.Ctx, key string) (string, error) {
	id := ctx.Params(key)
	if id == "" {
		return "", errors.Errorf("не указан параметр %v", key)
	}
	return id, nil
}

// SendError ответ по виду ошибки, ошибки хранилища логируются и скрываются за msg
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	return c.SendErrorWith(ctx, logger, err, msg, nil)
}

// SendErrorWith как SendError, overrides переопределяет код ответа для отдельных видов ошибок
func (c *BaseAPIController) SendErrorWith(ctx *fiber.Ctx, logger *log.Entry, err error, msg string, overrides map[apperrors.Kind]int) error {
	kind := apperrors.KindOf(err)
	if kind == apperrors.KindStorage {
		logger.WithError(err).Error(msg)
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(msg))
	}
	status, ok := overrides[kind]
	if !ok {
		status = defaultStatuses[kind]
	}
	logger.
		WithField("error_kind", kind.String()).
		WithError(err).
		Info(msg)
	return ctx.Status(status).JSON(apimodels.NewError(err.Error()))
}
