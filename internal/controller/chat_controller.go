package controller

import (
	"reliefconnect-ai-be/internal/dto"
	"reliefconnect-ai-be/internal/pkg/serverutils"
	"reliefconnect-ai-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Recommend(ctx *fiber.Ctx) error
	Summarize(ctx *fiber.Ctx) error
	ResetSession(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/support/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("recommend", c.Recommend)
	h.Post("summarize", c.Summarize)
	h.Delete("sessions/:id", c.ResetSession)
}

func (c *chatController) Recommend(ctx *fiber.Ctx) error {
	var req dto.RecommendRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.Recommend(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Recommendation generated", res))
}

func (c *chatController) Summarize(ctx *fiber.Ctx) error {
	var req dto.SummarizeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.Summarize(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Conversation summarized", res))
}

func (c *chatController) ResetSession(ctx *fiber.Ctx) error {
	c.chatService.ResetSession(ctx.Params("id"))
	return ctx.JSON(serverutils.SuccessResponse[any]("Session cleared", nil))
}
