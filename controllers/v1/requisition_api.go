package apiv1

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"job-requisition-backend/controllers"
	pdfexport "job-requisition-backend/lib/export/pdf"
	xlsexport "job-requisition-backend/lib/export/xls"
	requisitionhandler "job-requisition-backend/lib/requisition"
	"job-requisition-backend/models"
	apimodels "job-requisition-backend/models/api"
	requisitionapimodels "job-requisition-backend/models/api/requisition"
)

type requisitionApiController struct {
	controllers.BaseAPIController
	service  requisitionhandler.Provider
	exporter xlsexport.Provider
}

func InitRequisitionApiRouters(app fiber.Router, service requisitionhandler.Provider, exporter xlsexport.Provider) {
	controller := requisitionApiController{
		service:  service,
		exporter: exporter,
	}
	app.Route("requisition", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Post("list", controller.list)
		router.Get("stats", controller.stats)
		router.Get("export/xls", controller.exportXls)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("approve", controller.approve) // согласовать
			idRoute.Put("reject", controller.reject)   // отклонить
			idRoute.Get("pdf", controller.pdf)         // печатная форма
		})
	})
}

// @Summary Создание
// @Tags Заявка на подбор
// @Description Создание заявки, статус pending
// @Param	body body	 requisitionapimodels.RequisitionData	true	"request body"
// @Success 200 {object} apimodels.Response{data=models.JobRequisition}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requisition [post]
func (c *requisitionApiController) create(ctx *fiber.Ctx) error {
	var payload requisitionapimodels.RequisitionData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rec, err := c.service.Create(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(rec))
}

// @Summary Список
// @Tags Заявка на подбор
// @Description Список заявок, новые первыми
// @Param	body body	 requisitionapimodels.RequisitionFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]models.JobRequisition}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requisition/list [post]
func (c *requisitionApiController) list(ctx *fiber.Ctx) error {
	var payload requisitionapimodels.RequisitionFilter
	if len(ctx.Body()) != 0 {
		if err := c.BodyParser(ctx, &payload); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := c.service.List(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка заявок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, int64(len(list))))
}

// @Summary Статистика
// @Tags Заявка на подбор
// @Description Количество заявок по статусам
// @Success 200 {object} apimodels.Response{data=requisitionapimodels.RequisitionStats}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requisition/stats [get]
func (c *requisitionApiController) stats(ctx *fiber.Ctx) error {
	list, err := c.service.List(ctx.UserContext(), requisitionapimodels.RequisitionFilter{})
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения статистики по заявкам")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(requisitionapimodels.CalcStats(list)))
}

// @Summary Выгрузить в Excel
// @Tags Заявка на подбор
// @Description Реестр заявок в xlsx
// @Param   status		query    string	false	"pending/approved/rejected"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requisition/export/xls [get]
func (c *requisitionApiController) exportXls(ctx *fiber.Ctx) error {
	filter := requisitionapimodels.RequisitionFilter{
		Status: models.RequisitionStatus(ctx.Query("status")),
	}
	if err := filter.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := c.service.List(ctx.UserContext(), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка заявок для выгрузки в Excel")
	}
	data, err := c.exporter.ExportRequisitionList(list)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки заявок в Excel")
	}
	fileName := fmt.Sprintf("requisitions-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}

// @Summary Получение по ИД
// @Tags Заявка на подбор
// @Description Получение по ИД
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=models.JobRequisition}
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requisition/{id} [get]
func (c *requisitionApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rec, err := c.service.GetByID(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx).WithField("rec_id", id), err, "Ошибка получения заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(rec))
}

// @Summary Согласовать
// @Tags Заявка на подбор
// @Description Согласование заявки на рассмотрении
// @Param	body body	 requisitionapimodels.ReviewData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=models.JobRequisition}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requisition/{id}/approve [put]
func (c *requisitionApiController) approve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload requisitionapimodels.ReviewData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rec, err := c.service.Approve(ctx.UserContext(), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx).WithField("rec_id", id), err, "Ошибка согласования заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(rec))
}

// @Summary Отклонить
// @Tags Заявка на подбор
// @Description Отклонение заявки на рассмотрении, комментарий обязателен
// @Param	body body	 requisitionapimodels.RejectData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=models.JobRequisition}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requisition/{id}/reject [put]
func (c *requisitionApiController) reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload requisitionapimodels.RejectData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rec, err := c.service.Reject(ctx.UserContext(), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx).WithField("rec_id", id), err, "Ошибка отклонения заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(rec))
}

// @Summary Печатная форма
// @Tags Заявка на подбор
// @Description Печатная форма заявки в pdf
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/requisition/{id}/pdf [get]
func (c *requisitionApiController) pdf(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	logger := c.GetLogger(ctx).WithField("rec_id", id)
	rec, err := c.service.GetByID(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, logger, err, "Ошибка получения заявки")
	}
	body, err := pdfexport.GenerateRequisitionForm(rec)
	if err != nil {
		return c.SendError(ctx, logger, err, "Ошибка формирования печатной формы заявки")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+rec.ID+`.pdf"`)
	return ctx.SendStream(bytes.NewReader(body), len(body))
}
