package controller

import (
	"errors"

	"ai-recorddesk-be/internal/dto"
	"ai-recorddesk-be/internal/pkg/serverutils"
	"ai-recorddesk-be/internal/service"
	"ai-recorddesk-be/pkg/store"

	"github.com/gofiber/fiber/v2"
)

type IRecordController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Query(ctx *fiber.Ctx) error
	Collections(ctx *fiber.Ctx) error
}

type recordController struct {
	service service.IRecordService
}

func NewRecordController(service service.IRecordService) IRecordController {
	return &recordController{service: service}
}

func (c *recordController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/records")
	h.Get("/collections", c.Collections)
	h.Post("/", serverutils.JwtMiddleware, c.Create)
	// Reads may be anonymous; sensitive collections are refused downstream.
	h.Post("/query", serverutils.OptionalJwtMiddleware, c.Query)
}

func (c *recordController) Collections(ctx *fiber.Ctx) error {
	return serverutils.SuccessResponse(ctx, "ok", c.service.Collections())
}

func (c *recordController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateRecordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, err.Error())
	}

	res, err := c.service.Create(ctx.Context(), serverutils.ActorID(ctx), &req)
	if err != nil {
		return recordError(ctx, err)
	}
	return serverutils.SuccessResponse(ctx, "Record saved", res)
}

func (c *recordController) Query(ctx *fiber.Ctx) error {
	var req dto.QueryRecordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, err.Error())
	}

	res, err := c.service.Query(ctx.Context(), serverutils.ActorID(ctx), &req)
	if err != nil {
		return recordError(ctx, err)
	}
	return serverutils.SuccessResponse(ctx, "ok", res)
}

func recordError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrDenied):
		return serverutils.ErrorResponse(ctx, fiber.StatusForbidden, err.Error())
	case errors.Is(err, store.ErrUnavailable):
		return serverutils.ErrorResponse(ctx, fiber.StatusServiceUnavailable, "The operation is unavailable right now")
	default:
		return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, err.Error())
	}
}
