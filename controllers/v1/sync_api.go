package apiv1

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"huntflow-sync/config"
	"huntflow-sync/controllers"
	huntflowhandler "huntflow-sync/lib/huntflow"
	huntflowworker "huntflow-sync/lib/huntflow/worker"
	"huntflow-sync/lib/utils/lock"
	"huntflow-sync/middleware"
	apimodels "huntflow-sync/models/api"
)

type syncApiController struct {
	controllers.BaseAPIController
}

func InitSyncApiRouters(app fiber.Router) {
	controller := syncApiController{}
	app.Route("sync", func(router fiber.Router) {
		router.Post(":stage", controller.run)
	})
}

// @Summary Запуск этапа синхронизации
// @Tags Синхронизация HuntFlow
// @Description Этапы: structure, vacancies, vacancy_states, applicants, links, statuses
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   stage          		path    string  				    	true         "этап"
// @Success 200 {object} apimodels.Response{data=huntflowhandler.StageResult}
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/sync/{stage} [post]
func (c *syncApiController) run(ctx *fiber.Ctx) error {
	stage, err := huntflowhandler.ParseStage(ctx.Params("stage"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	logger := c.GetLogger(ctx).
		WithField("stage", stage).
		WithField("admin", middleware.GetSubject(ctx))
	logger.Info("ручной запуск этапа синхронизации")
	ttl := time.Duration(config.Conf.Workers.LockTTLMin) * time.Minute
	result, ran, err := huntflowworker.RunLocked(ctx.UserContext(), lock.Instance, huntflowhandler.Instance, stage, ttl)
	if err != nil {
		return c.SendError(ctx, logger, err, "Ошибка запуска этапа синхронизации")
	}
	if !ran {
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError("Этап уже выполняется"))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}
