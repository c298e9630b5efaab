package photo

import (
	"time"

	"github.com/skybi/rendezvous/internal/query"
)

const (
	FieldID        query.Field = "id"
	FieldUserID    query.Field = "userId"
	FieldIsMain    query.Field = "isMain"
	FieldDateAdded query.Field = "dateAdded"
)

// Photo represents a photo of a user hosted by the media host
type Photo struct {
	ID          int64     `json:"id"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	DateAdded   time.Time `json:"dateAdded"`
	IsMain      bool      `json:"isMain"`
	PublicID    string    `json:"-"`
	UserID      int64     `json:"-"`
}

// NewByIDSpecification matches the photo with the given ID
func NewByIDSpecification(id int64) *query.Specification[*Photo] {
	return query.NewBuilder[*Photo](query.Eq{Field: FieldID, Value: id}).Build()
}

// NewMainSpecification matches the main photo of a user
func NewMainSpecification(userID int64) *query.Specification[*Photo] {
	return query.NewBuilder[*Photo](query.And{
		query.Eq{Field: FieldUserID, Value: userID},
		query.Eq{Field: FieldIsMain, Value: true},
	}).Build()
}

// NewForUsersSpecification returns the photos of several users in the order they were added
func NewForUsersSpecification(userIDs []int64) *query.Specification[*Photo] {
	return query.NewBuilder[*Photo](query.InInt64(FieldUserID, userIDs)).
		OrderBy(FieldDateAdded).
		Build()
}

// NewForUserSpecification returns the photos of a single user in the order they were added
func NewForUserSpecification(userID int64) *query.Specification[*Photo] {
	return NewForUsersSpecification([]int64{userID})
}
