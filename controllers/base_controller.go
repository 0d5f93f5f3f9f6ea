package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	apimodels "huntflow-sync/models/api"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) QueryParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.QueryParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания параметров запроса")
		return errors.New("не удалось получить параметры запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	id := ctx.Params("id")
	if id == "" {
		return "", errors.New("не указан идентификатор")
	}
	return id, nil
}

func (c *BaseAPIController) GetIntID(ctx *fiber.Ctx) (int, error) {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil || id <= 0 {
		return 0, errors.New("некорректный идентификатор")
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
}

// SendError детали ошибки пишутся в лог, клиенту уходит только сообщение
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	logger.WithError(err).Error(msg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(msg))
}
