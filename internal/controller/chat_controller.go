package controller

import (
	"ai-recorddesk-be/internal/dto"
	"ai-recorddesk-be/internal/pkg/serverutils"
	"ai-recorddesk-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")
	// Anonymous turns are allowed; authorization downstream decides what an
	// unauthenticated caller may read.
	h.Post("/", serverutils.OptionalJwtMiddleware, c.Send)
	h.Get("/history/:session_id", serverutils.JwtMiddleware, c.History)
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	if sessionID == "" {
		return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, "session_id is required")
	}

	turns, err := c.service.History(ctx.Context(), sessionID)
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusInternalServerError, "The operation is unavailable right now")
	}
	return serverutils.SuccessResponse(ctx, "ok", turns)
}

func (c *chatController) Send(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusBadRequest, err.Error())
	}
	// A first message may arrive without a session. Mint one and hand it
	// back so the client can continue the conversation.
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	actorID := serverutils.ActorID(ctx)

	res, err := c.service.HandleMessage(ctx.Context(), actorID, &req)
	if err != nil {
		return serverutils.ErrorResponse(ctx, fiber.StatusInternalServerError, "The operation is unavailable right now")
	}
	return serverutils.SuccessResponse(ctx, "ok", res)
}
