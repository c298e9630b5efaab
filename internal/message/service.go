package message

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/skybi/rendezvous/internal/query"
	"github.com/skybi/rendezvous/internal/user"
)

var (
	ErrNotFound          = errors.New("message not found")
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrUnauthorized      = errors.New("not authorized to access these messages")
	ErrEmptyContent      = errors.New("message content must not be empty")
)

// Service implements the messaging operations
type Service struct {
	Messages Store
	Users    user.Store
	Now      func() time.Time
}

// GetByID retrieves a message the given user sent or received
func (service *Service) GetByID(ctx context.Context, callerID, userID, id int64) (*Message, error) {
	if callerID != userID {
		return nil, ErrUnauthorized
	}
	obj, ok, err := query.Evaluate(service.Messages.Query(), NewByIDSpecification(id)).First(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	if obj.SenderID != userID && obj.RecipientID != userID {
		return nil, ErrUnauthorized
	}
	return obj, nil
}

// Create sends a new message from the sender to the recipient
func (service *Service) Create(ctx context.Context, callerID, senderID, recipientID int64, content string) (*Message, error) {
	if callerID != senderID {
		return nil, ErrUnauthorized
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	_, found, err := query.Evaluate(service.Users.Query(), user.NewByIDSpecification(recipientID)).First(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrRecipientNotFound
	}

	obj := &Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
		MessageSent: service.now(),
	}
	if err := service.Messages.Create(ctx, obj); err != nil {
		return nil, err
	}
	return service.GetByID(ctx, callerID, senderID, obj.ID)
}

// List retrieves a page of messages of one of the user's containers
func (service *Service) List(ctx context.Context, callerID int64, params ListParams) (*query.Page[*Message], error) {
	if callerID != params.UserID {
		return nil, ErrUnauthorized
	}
	params.Normalize()
	return query.Paginate(ctx, service.Messages.Query(), NewContainerPageSpecification(params), NewContainerCountSpecification(params), params.PageParams)
}

// Thread retrieves the conversation between the user and a recipient.
// Unread messages the user received in it are marked as read.
func (service *Service) Thread(ctx context.Context, callerID, userID, recipientID int64) ([]*Message, error) {
	if callerID != userID {
		return nil, ErrUnauthorized
	}

	messages, err := query.Evaluate(service.Messages.Query(), NewThreadSpecification(userID, recipientID)).List(ctx)
	if err != nil {
		return nil, err
	}

	var unread []*Message
	for _, obj := range messages {
		if obj.RecipientID == userID && !obj.IsRead {
			unread = append(unread, obj)
		}
	}
	if len(unread) == 0 {
		return messages, nil
	}

	now := service.now()
	ids := make([]int64, len(unread))
	for i, obj := range unread {
		ids[i] = obj.ID
	}
	if err := service.Messages.MarkRead(ctx, ids, now); err != nil {
		return nil, err
	}
	for _, obj := range unread {
		obj.IsRead = true
		read := now
		obj.DateRead = &read
	}
	return messages, nil
}

func (service *Service) now() time.Time {
	if service.Now == nil {
		return time.Now().UTC()
	}
	return service.Now()
}
