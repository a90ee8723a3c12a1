package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"job-requisition-backend/fiberlog"
	"job-requisition-backend/lib/kv"
	requisitionhandler "job-requisition-backend/lib/requisition"
	requisitionvalidation "job-requisition-backend/lib/requisition/validation"
	apimodels "job-requisition-backend/models/api"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		c.GetLogger(ctx).WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	id := strings.TrimSpace(ctx.Params("id"))
	if id == "" {
		return "", errors.New("не указан идентификатор заявки")
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	logger := log.WithField("path", ctx.Path()).
		WithField("method", ctx.Method())
	if requestID, ok := ctx.Locals(fiberlog.RequestIDKey).(string); ok && requestID != "" {
		logger = logger.WithField("request_id", requestID)
	}
	return logger
}

// SendError ответ с кодом по типу ошибки сервиса.
// Ошибки валидации и конфликты не логируются как ошибки сервера.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	if vErr, ok := requisitionvalidation.IsValidationError(err); ok {
		logger.WithError(err).Info(msg)
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewErrorWithData(vErr.Error(), vErr))
	}
	switch {
	case errors.Is(err, requisitionhandler.ErrNotFound):
		logger.WithError(err).Info(msg)
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, requisitionvalidation.ErrIllegalTransition), errors.Is(err, kv.ErrRevisionConflict):
		logger.WithError(err).Warn(msg)
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(err.Error()))
	}
	logger.WithError(err).Error(msg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(msg))
}
