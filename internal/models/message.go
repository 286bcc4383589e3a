package models

import "time"

const (
	MessageStatusSent = "sent"
	MessageStatusRead = "read"
)

type PrivateMessage struct {
	ID         int64        `json:"id"`
	Content    string       `json:"content"`
	SenderID   int64        `json:"senderId"`
	ReceiverID int64        `json:"receiverId"`
	Read       bool         `json:"read"`
	Status     string       `json:"status"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
	Sender     *UserSummary `json:"sender,omitempty"`
	Receiver   *UserSummary `json:"receiver,omitempty"`
}

// Conversation pairs a contact with the most recent message exchanged with
// them, in either direction. It is derived per request and never stored.
type Conversation struct {
	Contact     UserSummary     `json:"contact"`
	LastMessage *PrivateMessage `json:"lastMessage"`
}
