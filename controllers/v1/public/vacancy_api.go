package publicapi

import (
	"github.com/gofiber/fiber/v2"
	"huntflow-sync/controllers"
	huntflowhandler "huntflow-sync/lib/huntflow"
	vacancyhandler "huntflow-sync/lib/vacancy"
	apimodels "huntflow-sync/models/api"
)

type publicVacancyApiController struct {
	controllers.BaseAPIController
}

func InitPublicVacancyApiRouters(app fiber.Router) {
	controller := publicVacancyApiController{}
	app.Route("vacancies", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Get(":id", controller.get)
	})
}

// @Summary Список опубликованных вакансий
// @Tags Вакансии
// @Description Открытые вакансии, загруженные из HuntFlow
// @Success 200 {object} apimodels.Response{data=[]vacancyapimodels.VacancyView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/public/vacancies [get]
func (c *publicVacancyApiController) list(ctx *fiber.Ctx) error {
	list, err := vacancyhandler.Instance.ListPublished()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка вакансий")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Вакансия из HuntFlow
// @Tags Вакансии
// @Description Актуальные данные вакансии напрямую из HuntFlow. Ошибка HuntFlow возвращается в поле error
// @Param   id          		path    int  true         "ид вакансии в HuntFlow"
// @Success 200 {object} huntflowhandler.VacancyLookup
// @Failure 400 {object} huntflowhandler.VacancyLookup
// @router /api/v1/public/vacancies/{id} [get]
func (c *publicVacancyApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetIntID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(huntflowhandler.VacancyLookup{Error: err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(huntflowhandler.Instance.GetVacancy(ctx.UserContext(), id))
}
