package apiv1

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"huntflow-sync/controllers"
	referralhandler "huntflow-sync/lib/referral"
	apimodels "huntflow-sync/models/api"
	referralapimodels "huntflow-sync/models/api/referral"
)

type referralApiController struct {
	controllers.BaseAPIController
}

func InitReferralApiRouters(app fiber.Router) {
	controller := referralApiController{}
	app.Route("referrals", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Post("list", controller.list)
		router.Put("export", controller.export)
		router.Get(":id", controller.get)
	})
}

// @Summary Создание рекомендации
// @Tags Рекомендации
// @Description Рекомендация будет отправлена в HuntFlow фоновой задачей
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 referralapimodels.ReferralData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/referrals [post]
func (c *referralApiController) create(ctx *fiber.Ctx) error {
	var payload referralapimodels.ReferralData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := referralhandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания рекомендации")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Список рекомендаций
// @Tags Рекомендации
// @Description Список рекомендаций
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 referralapimodels.ReferralFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]referralapimodels.ReferralView}
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/referrals/list [post]
func (c *referralApiController) list(ctx *fiber.Ctx) error {
	var payload referralapimodels.ReferralFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := referralhandler.Instance.List(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка рекомендаций")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Получение по ИД
// @Tags Рекомендации
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=referralapimodels.ReferralView}
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/referrals/{id} [get]
func (c *referralApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := referralhandler.Instance.GetByID(id)
	if err != nil {
		if errors.Is(err, referralhandler.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx).WithField("referral_id", id), err, "Ошибка получения рекомендации")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Выгрузить в Excel
// @Tags Рекомендации
// @Description Выгрузка рекомендаций со статусами HuntFlow в Excel
// @Param   Authorization		header	string	true	"Authorization token"
// @Param	body body	referralapimodels.ReferralFilter	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/referrals/export [put]
func (c *referralApiController) export(ctx *fiber.Ctx) error {
	var payload referralapimodels.ReferralFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	data, err := referralhandler.Instance.Export(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки рекомендаций в Excel")
	}
	fileName := fmt.Sprintf("referrals-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}
