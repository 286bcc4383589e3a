package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shesaidimnothing/filrouge-api/internal/models"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrSelfMessage      = errors.New("sender and receiver must differ")
	ErrSenderNotFound   = errors.New("sender not found")
	ErrReceiverNotFound = errors.New("receiver not found")
)

// ContactResolutionError reports a contact id present in the message log
// with no matching user row. The whole listing fails rather than silently
// dropping the entry.
type ContactResolutionError struct {
	ContactID int64
	Err       error
}

func (e *ContactResolutionError) Error() string {
	return fmt.Sprintf("resolve contact %d: %v", e.ContactID, e.Err)
}

func (e *ContactResolutionError) Unwrap() error { return e.Err }

type userReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type messageStore interface {
	Create(ctx context.Context, content string, senderID, receiverID int64) (*models.PrivateMessage, error)
	ListForUser(ctx context.Context, userID int64) ([]models.PrivateMessage, error)
	ListBetween(ctx context.Context, userID, contactID int64) ([]models.PrivateMessage, error)
	LastBetween(ctx context.Context, userID, contactID int64) (*models.PrivateMessage, error)
	DistinctReceiverIDs(ctx context.Context, senderID int64) ([]int64, error)
	DistinctSenderIDs(ctx context.Context, receiverID int64) ([]int64, error)
	MarkRead(ctx context.Context, id int64) (*models.PrivateMessage, error)
	MarkConversationRead(ctx context.Context, senderID, receiverID int64) error
}

// MessagingService owns the private-message operations, in particular the
// conversation aggregation that derives a contact list with the latest
// message per pairwise thread.
type MessagingService struct {
	messageRepo messageStore
	userRepo    userReader
}

func NewMessagingService(messageRepo messageStore, userRepo userReader) *MessagingService {
	return &MessagingService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
	}
}

// ListConversations returns one entry per distinct counterparty of userID:
// everyone who appears as the other party of at least one message, each
// paired with the most recent message of that thread. Contacts are resolved
// in ascending id order so responses are deterministic; callers must not
// read meaning into the list order.
func (s *MessagingService) ListConversations(ctx context.Context, userID int64) ([]models.Conversation, error) {
	if userID <= 0 {
		return nil, ErrInvalidInput
	}

	sentTo, err := s.messageRepo.DistinctReceiverIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	receivedFrom, err := s.messageRepo.DistinctSenderIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{}, len(sentTo)+len(receivedFrom))
	contactIDs := make([]int64, 0, len(sentTo)+len(receivedFrom))
	for _, ids := range [][]int64{sentTo, receivedFrom} {
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			contactIDs = append(contactIDs, id)
		}
	}
	sort.Slice(contactIDs, func(i, j int) bool { return contactIDs[i] < contactIDs[j] })

	conversations := make([]models.Conversation, 0, len(contactIDs))
	for _, contactID := range contactIDs {
		contact, err := s.userRepo.GetByID(ctx, contactID)
		if err != nil {
			return nil, &ContactResolutionError{ContactID: contactID, Err: err}
		}

		lastMessage, err := s.messageRepo.LastBetween(ctx, userID, contactID)
		if err != nil {
			return nil, fmt.Errorf("last message with contact %d: %w", contactID, err)
		}

		conversations = append(conversations, models.Conversation{
			Contact:     contact.Summary(),
			LastMessage: lastMessage,
		})
	}

	return conversations, nil
}

// ListConversation returns the thread between two users, oldest first. The
// pair is symmetric: swapping the arguments yields the same messages.
func (s *MessagingService) ListConversation(ctx context.Context, userID, contactID int64) ([]models.PrivateMessage, error) {
	if userID <= 0 || contactID <= 0 {
		return nil, ErrInvalidInput
	}

	return s.messageRepo.ListBetween(ctx, userID, contactID)
}

// ListUserMessages returns everything the user sent or received, newest
// first.
func (s *MessagingService) ListUserMessages(ctx context.Context, userID int64) ([]models.PrivateMessage, error) {
	if userID <= 0 {
		return nil, ErrInvalidInput
	}

	return s.messageRepo.ListForUser(ctx, userID)
}

func (s *MessagingService) SendMessage(
	ctx context.Context,
	content string,
	senderID int64,
	receiverID int64,
) (*models.PrivateMessage, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" || senderID <= 0 || receiverID <= 0 {
		return nil, ErrInvalidInput
	}
	if senderID == receiverID {
		return nil, ErrSelfMessage
	}

	sender, err := s.userRepo.GetByID(ctx, senderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSenderNotFound
		}
		return nil, err
	}
	receiver, err := s.userRepo.GetByID(ctx, receiverID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReceiverNotFound
		}
		return nil, err
	}

	message, err := s.messageRepo.Create(ctx, trimmed, senderID, receiverID)
	if err != nil {
		return nil, err
	}

	senderSummary := sender.Summary()
	receiverSummary := receiver.Summary()
	message.Sender = &senderSummary
	message.Receiver = &receiverSummary
	return message, nil
}

// MarkRead transitions one message to read. Idempotent: marking an
// already-read message succeeds without changing it.
func (s *MessagingService) MarkRead(ctx context.Context, messageID int64) (*models.PrivateMessage, error) {
	if messageID <= 0 {
		return nil, ErrInvalidInput
	}

	return s.messageRepo.MarkRead(ctx, messageID)
}

// MarkConversationRead marks everything contactID sent to userID as read.
// Messages going the other way are left alone: this is "mark what I
// received", not "mark the whole thread".
func (s *MessagingService) MarkConversationRead(ctx context.Context, userID, contactID int64) error {
	if userID <= 0 || contactID <= 0 {
		return ErrInvalidInput
	}

	return s.messageRepo.MarkConversationRead(ctx, contactID, userID)
}
