package photo

import (
	"context"

	"github.com/skybi/rendezvous/internal/query"
)

// Store defines the photo storage API
type Store interface {
	// Query returns the base collection query over all photos
	Query() query.Queryable[*Photo]

	// Create stores a new photo and assigns its ID
	Create(ctx context.Context, obj *Photo) error

	// SetMain marks a photo as the main photo of a user and unmarks the previous one atomically
	SetMain(ctx context.Context, userID, photoID int64) error

	// Delete deletes a photo by its ID
	Delete(ctx context.Context, id int64) error
}
