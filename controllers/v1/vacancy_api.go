package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"huntflow-sync/controllers"
	vacancyhandler "huntflow-sync/lib/vacancy"
	"huntflow-sync/middleware"
	apimodels "huntflow-sync/models/api"
	vacancyapimodels "huntflow-sync/models/api/vacancy"
)

type vacancyApiController struct {
	controllers.BaseAPIController
}

func InitVacancyApiRouters(app fiber.Router) {
	controller := vacancyApiController{}
	app.Route("vacancies", func(router fiber.Router) {
		router.Put(":id/publish", controller.publish)
	})
}

// @Summary Публикация вакансии
// @Tags Вакансии
// @Description Вакансии из HuntFlow сохраняются неопубликованными, на портал попадают только опубликованные
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 vacancyapimodels.PublishData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/vacancies/{id}/publish [put]
func (c *vacancyApiController) publish(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload vacancyapimodels.PublishData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	logger := c.GetLogger(ctx).
		WithField("vacancy_id", id).
		WithField("admin", middleware.GetSubject(ctx))
	err = vacancyhandler.Instance.SetPublished(id, payload.Published)
	if err != nil {
		if errors.Is(err, vacancyhandler.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, logger, err, "Ошибка публикации вакансии")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
