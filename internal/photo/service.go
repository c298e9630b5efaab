package photo

import (
	"context"
	"errors"
	"time"

	"github.com/skybi/rendezvous/internal/query"
)

var (
	ErrNotFound     = errors.New("photo not found")
	ErrUnauthorized = errors.New("not authorized to manage this photo")
	ErrAlreadyMain  = errors.New("this is already the main photo")
	ErrDeleteMain   = errors.New("the main photo cannot be deleted")
	ErrMissingURL   = errors.New("a hosted photo URL is required")
)

// Service implements the photo management operations
type Service struct {
	Store Store
	Now   func() time.Time
}

// Get retrieves a photo by its ID
func (service *Service) Get(ctx context.Context, id int64) (*Photo, error) {
	obj, ok, err := query.Evaluate(service.Store.Query(), NewByIDSpecification(id)).First(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return obj, nil
}

// GetMain retrieves the main photo of a user; it returns nil if the user has none
func (service *Service) GetMain(ctx context.Context, userID int64) (*Photo, error) {
	obj, ok, err := query.Evaluate(service.Store.Query(), NewMainSpecification(userID)).First(ctx)
	if err != nil || !ok {
		return nil, err
	}
	return obj, nil
}

// Add stores an already hosted photo for a user.
// The first photo of a user becomes their main photo.
func (service *Service) Add(ctx context.Context, callerID, userID int64, obj *Photo) error {
	if callerID != userID {
		return ErrUnauthorized
	}
	if obj.URL == "" {
		return ErrMissingURL
	}

	main, err := service.GetMain(ctx, userID)
	if err != nil {
		return err
	}

	obj.UserID = userID
	obj.IsMain = main == nil
	obj.DateAdded = service.now()
	return service.Store.Create(ctx, obj)
}

// SetMain makes a photo the main photo of its owner
func (service *Service) SetMain(ctx context.Context, callerID, userID, id int64) error {
	obj, err := service.owned(ctx, callerID, userID, id)
	if err != nil {
		return err
	}
	if obj.IsMain {
		return ErrAlreadyMain
	}
	return service.Store.SetMain(ctx, userID, id)
}

// Delete deletes a photo that is not the main photo of its owner
func (service *Service) Delete(ctx context.Context, callerID, userID, id int64) error {
	obj, err := service.owned(ctx, callerID, userID, id)
	if err != nil {
		return err
	}
	if obj.IsMain {
		return ErrDeleteMain
	}
	return service.Store.Delete(ctx, id)
}

func (service *Service) owned(ctx context.Context, callerID, userID, id int64) (*Photo, error) {
	if callerID != userID {
		return nil, ErrUnauthorized
	}
	obj, err := service.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if obj.UserID != userID {
		return nil, ErrUnauthorized
	}
	return obj, nil
}

func (service *Service) now() time.Time {
	if service.Now == nil {
		return time.Now().UTC()
	}
	return service.Now()
}
