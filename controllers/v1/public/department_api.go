package publicapi

import (
	"github.com/gofiber/fiber/v2"
	"huntflow-sync/controllers"
	departmentprovider "huntflow-sync/lib/dicts/department"
	apimodels "huntflow-sync/models/api"
	dictapimodels "huntflow-sync/models/api/dict"
)

type publicDepartmentApiController struct {
	controllers.BaseAPIController
}

func InitPublicDepartmentApiRouters(app fiber.Router) {
	controller := publicDepartmentApiController{}
	app.Route("departments", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Get("tree", controller.tree)
	})
}

// @Summary Подразделения
// @Tags Оргструктура
// @Description Подразделения в порядке обхода дерева (_lft)
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.DepartmentView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/public/departments [get]
func (c *publicDepartmentApiController) list(ctx *fiber.Ctx) error {
	list, err := departmentprovider.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка подразделений")
	}
	result := make([]dictapimodels.DepartmentView, 0, len(list))
	for _, rec := range list {
		result = append(result, dictapimodels.DepartmentConvert(rec))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Дерево подразделений
// @Tags Оргструктура
// @Description Оргструктура HuntFlow в виде дерева
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.DepartmentTreeItem}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/public/departments/tree [get]
func (c *publicDepartmentApiController) tree(ctx *fiber.Ctx) error {
	list, err := departmentprovider.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения оргструктуры")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(dictapimodels.DepartmentTree(list)))
}
