package user

import (
	"context"
	"errors"
	"time"

	"github.com/skybi/rendezvous/internal/like"
	"github.com/skybi/rendezvous/internal/query"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrUnauthorized = errors.New("not authorized to act on behalf of this user")
	ErrAlreadyLiked = errors.New("the user is already liked")
	ErrSelfLike     = errors.New("users cannot like themselves")
)

// Service implements the user related operations
type Service struct {
	Users Store
	Likes like.Store
	Now   func() time.Time
}

// Search retrieves a page of users matching the given search parameters.
// If a gender filter is given, the opposite gender is searched for.
func (service *Service) Search(ctx context.Context, callerID int64, params SearchParams) (*query.Page[*User], error) {
	params.Normalize()
	params.UserID = &callerID
	if params.GenderID != nil {
		opposite := oppositeGender(*params.GenderID)
		params.GenderID = &opposite
	}

	filter := &Filter{
		SearchParams: params,
		Now:          service.now(),
	}
	if filter.LikeFilterActive() {
		var ids []int64
		var err error
		if params.Likers {
			ids, err = like.LikerIDs(ctx, service.Likes.Query(), callerID)
		} else {
			ids, err = like.LikeeIDs(ctx, service.Likes.Query(), callerID)
		}
		if err != nil {
			return nil, err
		}
		filter.LikedIDs = ids
	}

	return query.Paginate(ctx, service.Users.Query(), NewSearchSpecification(filter), NewCountSpecification(filter), params.PageParams)
}

// GetByID retrieves a user including their photos and reference data
func (service *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	obj, ok, err := query.Evaluate(service.Users.Query(), NewByIDSpecification(id)).First(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return obj, nil
}

// Update updates the profile of the calling user
func (service *Service) Update(ctx context.Context, callerID, id int64, update *Update) (*User, error) {
	if callerID != id {
		return nil, ErrUnauthorized
	}
	if _, err := service.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if !update.IsEmpty() {
		if err := service.Users.Update(ctx, id, update); err != nil {
			return nil, err
		}
	}
	return service.GetByID(ctx, id)
}

// Like makes the liker like the likee
func (service *Service) Like(ctx context.Context, callerID, likerID, likeeID int64) error {
	if callerID != likerID {
		return ErrUnauthorized
	}
	if likerID == likeeID {
		return ErrSelfLike
	}

	exists, err := like.Exists(ctx, service.Likes.Query(), likerID, likeeID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyLiked
	}

	if _, err := service.GetByID(ctx, likeeID); err != nil {
		return err
	}

	return service.Likes.Create(ctx, &like.Like{LikerID: likerID, LikeeID: likeeID})
}

func (service *Service) now() time.Time {
	if service.Now == nil {
		return time.Now().UTC()
	}
	return service.Now()
}

func oppositeGender(id int64) int64 {
	if id == 1 {
		return 2
	}
	return 1
}
