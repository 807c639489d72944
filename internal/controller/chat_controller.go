package controller

import (
	"github.com/gofiber/fiber/v2"

	"rag-chat-be/internal/dto"
	"rag-chat-be/internal/pkg/serverutils"
	"rag-chat-be/internal/service"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Message(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService *service.ChatService
}

func NewChatController(chatService *service.ChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("message", c.Message)
}

func (c *chatController) Message(ctx *fiber.Ctx) error {
	var req dto.ChatMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := c.chatService.HandleMessage(ctx.Context(), req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
