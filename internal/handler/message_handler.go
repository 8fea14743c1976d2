package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/internal/service"
	"github.com/gatherly/gatherly-backend/pkg/utils"
)

type MessageHandler struct {
	messageService *service.MessageService
	validator      *utils.Validator
}

func NewMessageHandler(messageService *service.MessageService, validator *utils.Validator) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		validator:      validator,
	}
}

func (h *MessageHandler) SendMessage(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	var req models.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	message, err := h.messageService.SendMessage(currentUser(c), eventID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(message, "Message sent"))
}

func (h *MessageHandler) GetMessages(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	page, limit := parsePagination(c)
	messages, pagination, err := h.messageService.GetMessages(currentUser(c).ID, eventID, page, limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(fiber.Map{
		"messages":   messages,
		"pagination": pagination,
	}, ""))
}

func (h *MessageHandler) EditMessage(c *fiber.Ctx) error {
	messageID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	var req models.EditMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	message, err := h.messageService.EditMessage(currentUser(c), messageID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(message, "Message updated"))
}

func (h *MessageHandler) DeleteMessage(c *fiber.Ctx) error {
	messageID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	if err := h.messageService.DeleteMessage(currentUser(c), messageID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Message deleted"))
}
