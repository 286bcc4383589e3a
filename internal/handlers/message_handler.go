package handlers

import (
	"context"
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/shesaidimnothing/filrouge-api/internal/models"
	"github.com/shesaidimnothing/filrouge-api/internal/services"
)

type messagingApplicationService interface {
	ListUserMessages(ctx context.Context, userID int64) ([]models.PrivateMessage, error)
	ListConversations(ctx context.Context, userID int64) ([]models.Conversation, error)
	ListConversation(ctx context.Context, userID, contactID int64) ([]models.PrivateMessage, error)
	SendMessage(ctx context.Context, content string, senderID, receiverID int64) (*models.PrivateMessage, error)
	MarkRead(ctx context.Context, messageID int64) (*models.PrivateMessage, error)
	MarkConversationRead(ctx context.Context, userID, contactID int64) error
}

type MessageHandler struct {
	service messagingApplicationService
}

type sendMessageRequest struct {
	Content    string `json:"content"`
	SenderID   int64  `json:"senderId"`
	ReceiverID int64  `json:"receiverId"`
}

func NewMessageHandler(service messagingApplicationService) *MessageHandler {
	return &MessageHandler{service: service}
}

func (h *MessageHandler) ListUserMessages(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	messages, err := h.service.ListUserMessages(c.Context(), userID)
	if err != nil {
		return mapMessagingError(c, err)
	}

	return c.JSON(messages)
}

func (h *MessageHandler) ListConversations(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	conversations, err := h.service.ListConversations(c.Context(), userID)
	if err != nil {
		return mapMessagingError(c, err)
	}

	return c.JSON(conversations)
}

func (h *MessageHandler) GetConversation(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}
	contactID, err := parseIDParam(c, "contactId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid contact id"})
	}

	messages, err := h.service.ListConversation(c.Context(), userID, contactID)
	if err != nil {
		return mapMessagingError(c, err)
	}

	return c.JSON(messages)
}

func (h *MessageHandler) Send(c *fiber.Ctx) error {
	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	message, err := h.service.SendMessage(c.Context(), req.Content, req.SenderID, req.ReceiverID)
	if err != nil {
		return mapMessagingError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	messageID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid message id"})
	}

	message, err := h.service.MarkRead(c.Context(), messageID)
	if err != nil {
		return mapMessagingError(c, err)
	}

	return c.JSON(message)
}

func (h *MessageHandler) MarkConversationRead(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}
	contactID, err := parseIDParam(c, "contactId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid contact id"})
	}

	if err := h.service.MarkConversationRead(c.Context(), userID, contactID); err != nil {
		return mapMessagingError(c, err)
	}

	return c.JSON(fiber.Map{"message": "All messages marked as read"})
}

func parseIDParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id parameter")
	}
	return id, nil
}

func mapMessagingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "All required fields must be provided"})
	case errors.Is(err, services.ErrSelfMessage):
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "Sender and receiver must be different users"})
	case errors.Is(err, services.ErrSenderNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Sender not found"})
	case errors.Is(err, services.ErrReceiverNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Receiver not found"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Message not found"})
	default:
		log.Printf("message request failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to process message request"})
	}
}
