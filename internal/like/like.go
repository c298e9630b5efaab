package like

import (
	"context"

	"github.com/skybi/rendezvous/internal/query"
)

const (
	FieldLikerID query.Field = "likerId"
	FieldLikeeID query.Field = "likeeId"
)

// Like represents a user (the liker) liking another user (the likee)
type Like struct {
	LikerID int64 `json:"likerId"`
	LikeeID int64 `json:"likeeId"`
}

// Store defines the like storage API
type Store interface {
	// Query returns the base collection query over all likes
	Query() query.Queryable[*Like]

	// Create stores a new like
	Create(ctx context.Context, obj *Like) error
}

// NewSpecification matches the like of a specific liker for a specific likee.
// The pair is directional: (A, B) does not match a like of B for A.
func NewSpecification(likerID, likeeID int64) *query.Specification[*Like] {
	return query.NewBuilder[*Like](query.And{
		query.Eq{Field: FieldLikerID, Value: likerID},
		query.Eq{Field: FieldLikeeID, Value: likeeID},
	}).Build()
}

// NewLikersSpecification matches the likes a user received
func NewLikersSpecification(userIDs ...int64) *query.Specification[*Like] {
	return query.NewBuilder[*Like](query.InInt64(FieldLikeeID, userIDs)).OrderBy(FieldLikerID).Build()
}

// NewLikeesSpecification matches the likes a user gave
func NewLikeesSpecification(userIDs ...int64) *query.Specification[*Like] {
	return query.NewBuilder[*Like](query.InInt64(FieldLikerID, userIDs)).OrderBy(FieldLikeeID).Build()
}

// LikerIDs returns the IDs of the users who liked the given user
func LikerIDs(ctx context.Context, base query.Queryable[*Like], userID int64) ([]int64, error) {
	likes, err := query.Evaluate(base, NewLikersSpecification(userID)).List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(likes))
	for i, obj := range likes {
		ids[i] = obj.LikerID
	}
	return ids, nil
}

// LikeeIDs returns the IDs of the users the given user liked
func LikeeIDs(ctx context.Context, base query.Queryable[*Like], userID int64) ([]int64, error) {
	likes, err := query.Evaluate(base, NewLikeesSpecification(userID)).List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(likes))
	for i, obj := range likes {
		ids[i] = obj.LikeeID
	}
	return ids, nil
}

// Exists reports whether the liker already likes the likee
func Exists(ctx context.Context, base query.Queryable[*Like], likerID, likeeID int64) (bool, error) {
	_, ok, err := query.Evaluate(base, NewSpecification(likerID, likeeID)).First(ctx)
	return ok, err
}
