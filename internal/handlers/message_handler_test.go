package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/shesaidimnothing/filrouge-api/internal/models"
	"github.com/shesaidimnothing/filrouge-api/internal/services"
)

type stubMessagingService struct {
	conversationsResult []models.Conversation
	conversationsErr    error
	threadResult        []models.PrivateMessage
	threadErr           error
	sendResult          *models.PrivateMessage
	sendErr             error
	markReadResult      *models.PrivateMessage
	markReadErr         error
	markConversationErr error
	lastUserID          int64
	lastContactID       int64
	lastSenderID        int64
	lastReceiverID      int64
	lastContent         string
	lastMessageID       int64
}

func (s *stubMessagingService) ListUserMessages(_ context.Context, userID int64) ([]models.PrivateMessage, error) {
	s.lastUserID = userID
	return s.threadResult, s.threadErr
}

func (s *stubMessagingService) ListConversations(_ context.Context, userID int64) ([]models.Conversation, error) {
	s.lastUserID = userID
	return s.conversationsResult, s.conversationsErr
}

func (s *stubMessagingService) ListConversation(_ context.Context, userID, contactID int64) ([]models.PrivateMessage, error) {
	s.lastUserID = userID
	s.lastContactID = contactID
	return s.threadResult, s.threadErr
}

func (s *stubMessagingService) SendMessage(_ context.Context, content string, senderID, receiverID int64) (*models.PrivateMessage, error) {
	s.lastContent = content
	s.lastSenderID = senderID
	s.lastReceiverID = receiverID
	return s.sendResult, s.sendErr
}

func (s *stubMessagingService) MarkRead(_ context.Context, messageID int64) (*models.PrivateMessage, error) {
	s.lastMessageID = messageID
	return s.markReadResult, s.markReadErr
}

func (s *stubMessagingService) MarkConversationRead(_ context.Context, userID, contactID int64) error {
	s.lastUserID = userID
	s.lastContactID = contactID
	return s.markConversationErr
}

func newMessageApp(service *stubMessagingService) *fiber.App {
	handler := NewMessageHandler(service)

	app := fiber.New()
	messages := app.Group("/api/messages")
	messages.Get("/user/:userId", handler.ListUserMessages)
	messages.Get("/conversations/:userId", handler.ListConversations)
	messages.Get("/conversation/:userId/:contactId", handler.GetConversation)
	messages.Post("/", handler.Send)
	messages.Put("/read/:id", handler.MarkRead)
	messages.Put("/read-conversation/:userId/:contactId", handler.MarkConversationRead)
	return app
}

func TestListConversationsReturnsContactsWithLastMessage(t *testing.T) {
	service := &stubMessagingService{
		conversationsResult: []models.Conversation{
			{
				Contact: models.UserSummary{ID: 2, Name: "Bea", Email: "bea@example.com"},
				LastMessage: &models.PrivateMessage{
					ID:         7,
					Content:    "See you tomorrow",
					SenderID:   2,
					ReceiverID: 1,
					Status:     models.MessageStatusSent,
					CreatedAt:  time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
				},
			},
		},
	}
	app := newMessageApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/messages/conversations/1", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastUserID != 1 {
		t.Fatalf("expected user id 1 forwarded, got %d", service.lastUserID)
	}

	var body []models.Conversation
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(body) != 1 || body[0].Contact.ID != 2 {
		t.Fatalf("unexpected response: %+v", body)
	}
	if body[0].LastMessage == nil || body[0].LastMessage.ID != 7 {
		t.Fatalf("expected last message 7, got %+v", body[0].LastMessage)
	}
}

func TestListConversationsInvalidUserID(t *testing.T) {
	app := newMessageApp(&stubMessagingService{})

	req := httptest.NewRequest(http.MethodGet, "/api/messages/conversations/abc", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetConversationForwardsBothIDs(t *testing.T) {
	service := &stubMessagingService{
		threadResult: []models.PrivateMessage{
			{ID: 1, Content: "hi", SenderID: 1, ReceiverID: 2},
			{ID: 2, Content: "hey", SenderID: 2, ReceiverID: 1},
		},
	}
	app := newMessageApp(service)

	req := httptest.NewRequest(http.MethodGet, "/api/messages/conversation/1/2", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastUserID != 1 || service.lastContactID != 2 {
		t.Fatalf("unexpected forwarded ids: %d %d", service.lastUserID, service.lastContactID)
	}
}

func TestSendMessageReturnsCreated(t *testing.T) {
	service := &stubMessagingService{
		sendResult: &models.PrivateMessage{
			ID:         3,
			Content:    "hello",
			SenderID:   1,
			ReceiverID: 2,
			Status:     models.MessageStatusSent,
		},
	}
	app := newMessageApp(service)

	req := httptest.NewRequest(
		http.MethodPost,
		"/api/messages/",
		strings.NewReader(`{"content":"hello","senderId":1,"receiverId":2}`),
	)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastContent != "hello" || service.lastSenderID != 1 || service.lastReceiverID != 2 {
		t.Fatalf(
			"unexpected forwarded payload: %q %d %d",
			service.lastContent, service.lastSenderID, service.lastReceiverID,
		)
	}

	var body models.PrivateMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.ID != 3 || body.Status != models.MessageStatusSent {
		t.Fatalf("unexpected response body: %+v", body)
	}
}

func TestSendMessageMissingFieldsReturnsBadRequest(t *testing.T) {
	service := &stubMessagingService{sendErr: services.ErrInvalidInput}
	app := newMessageApp(service)

	req := httptest.NewRequest(http.MethodPost, "/api/messages/", strings.NewReader(`{"content":"hello"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestSendMessageUnknownSenderReturnsNotFound(t *testing.T) {
	service := &stubMessagingService{sendErr: services.ErrSenderNotFound}
	app := newMessageApp(service)

	req := httptest.NewRequest(
		http.MethodPost,
		"/api/messages/",
		strings.NewReader(`{"content":"hello","senderId":99,"receiverId":2}`),
	)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body["error"] != "Sender not found" {
		t.Fatalf("expected sender-specific error, got %q", body["error"])
	}
}

func TestMarkReadReturnsNotFound(t *testing.T) {
	service := &stubMessagingService{markReadErr: pgx.ErrNoRows}
	app := newMessageApp(service)

	req := httptest.NewRequest(http.MethodPut, "/api/messages/read/42", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestMarkConversationReadForwardsIDs(t *testing.T) {
	service := &stubMessagingService{}
	app := newMessageApp(service)

	req := httptest.NewRequest(http.MethodPut, "/api/messages/read-conversation/1/2", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastUserID != 1 || service.lastContactID != 2 {
		t.Fatalf("unexpected forwarded ids: %d %d", service.lastUserID, service.lastContactID)
	}
}
