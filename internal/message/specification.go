package message

import (
	"github.com/skybi/rendezvous/internal/query"
)

// The containers a user's messages may be listed from
const (
	ContainerInbox  = "Inbox"
	ContainerOutbox = "Outbox"
	ContainerUnread = "Unread"
)

var includes = []query.Include{IncludeSender, IncludeSenderPhotos, IncludeRecipient, IncludeRecipientPhotos}

// ListParams represents the parameters of a message container listing
type ListParams struct {
	query.PageParams
	UserID    int64
	Container string
}

// DefaultListParams returns the listing parameters of the unread container of a user
func DefaultListParams(userID int64) ListParams {
	return ListParams{
		PageParams: query.DefaultPageParams(),
		UserID:     userID,
		Container:  ContainerUnread,
	}
}

// NewContainerSpecification matches the messages of a user's container ordered by the time they were sent, newest
// first.
// Unknown container names (including the empty one) select the unread messages.
func NewContainerSpecification(params ListParams) *query.Specification[*Message] {
	return containerBuilder(params).Build()
}

// NewContainerPageSpecification is NewContainerSpecification restricted to the page the parameters describe
func NewContainerPageSpecification(params ListParams) *query.Specification[*Message] {
	return containerBuilder(params).Page(params.Window()).Build()
}

// NewContainerCountSpecification matches the same messages as NewContainerSpecification
func NewContainerCountSpecification(params ListParams) *query.Specification[*Message] {
	return query.NewBuilder[*Message](containerCriteria(params)).Build()
}

// NewThreadSpecification matches the messages exchanged between two users in both directions ordered by the time they
// were sent, newest first
func NewThreadSpecification(userA, userB int64) *query.Specification[*Message] {
	criteria := query.Or{
		query.And{
			query.Eq{Field: FieldRecipientID, Value: userA},
			query.Eq{Field: FieldSenderID, Value: userB},
		},
		query.And{
			query.Eq{Field: FieldRecipientID, Value: userB},
			query.Eq{Field: FieldSenderID, Value: userA},
		},
	}
	return query.NewBuilder[*Message](criteria).
		Include(includes...).
		OrderByDescending(FieldMessageSent).
		Build()
}

// NewByIDSpecification matches a single message
func NewByIDSpecification(id int64) *query.Specification[*Message] {
	return query.NewBuilder[*Message](query.Eq{Field: FieldID, Value: id}).Include(includes...).Build()
}

func containerBuilder(params ListParams) *query.Builder[*Message] {
	return query.NewBuilder[*Message](containerCriteria(params)).
		Include(includes...).
		OrderByDescending(FieldMessageSent)
}

func containerCriteria(params ListParams) query.Condition {
	switch params.Container {
	case ContainerInbox:
		return query.Eq{Field: FieldRecipientID, Value: params.UserID}
	case ContainerOutbox:
		return query.Eq{Field: FieldSenderID, Value: params.UserID}
	default:
		return query.And{
			query.Eq{Field: FieldRecipientID, Value: params.UserID},
			query.Eq{Field: FieldIsRead, Value: false},
		}
	}
}
