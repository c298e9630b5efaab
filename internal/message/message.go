package message

import (
	"context"
	"time"

	"github.com/skybi/rendezvous/internal/query"
	"github.com/skybi/rendezvous/internal/user"
)

const (
	FieldID          query.Field = "id"
	FieldSenderID    query.Field = "senderId"
	FieldRecipientID query.Field = "recipientId"
	FieldIsRead      query.Field = "isRead"
	FieldMessageSent query.Field = "messageSent"
)

const (
	IncludeSender          query.Include = "sender"
	IncludeSenderPhotos    query.Include = "sender.photos"
	IncludeRecipient       query.Include = "recipient"
	IncludeRecipientPhotos query.Include = "recipient.photos"
)

// Message represents a direct message sent from one user to another
type Message struct {
	ID          int64      `json:"id"`
	SenderID    int64      `json:"senderId"`
	RecipientID int64      `json:"recipientId"`
	Content     string     `json:"content"`
	IsRead      bool       `json:"isRead"`
	DateRead    *time.Time `json:"dateRead,omitempty"`
	MessageSent time.Time  `json:"messageSent"`

	// Only populated if included explicitly
	Sender    *user.User `json:"sender,omitempty"`
	Recipient *user.User `json:"recipient,omitempty"`
}

// Store defines the message storage API
type Store interface {
	// Query returns the base collection query over all messages
	Query() query.Queryable[*Message]

	// Create stores a new message and assigns its ID
	Create(ctx context.Context, obj *Message) error

	// MarkRead marks all given messages as read at the given time
	MarkRead(ctx context.Context, ids []int64, at time.Time) error
}
