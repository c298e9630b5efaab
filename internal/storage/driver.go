package storage

import (
	"context"

	"github.com/skybi/rendezvous/internal/like"
	"github.com/skybi/rendezvous/internal/message"
	"github.com/skybi/rendezvous/internal/photo"
	"github.com/skybi/rendezvous/internal/reference"
	"github.com/skybi/rendezvous/internal/user"
)

// Driver represents a storage driver
type Driver interface {
	// Initialize initializes the storage driver (i.e. opens a database connection)
	Initialize(ctx context.Context) error

	// Users provides a user store implementation
	Users() user.Store

	// Likes provides a like store implementation
	Likes() like.Store

	// Messages provides a message store implementation
	Messages() message.Store

	// Photos provides a photo store implementation
	Photos() photo.Store

	// Reference provides the reference data store implementation
	Reference() reference.Store

	// Close closes the storage driver (i.e. closes a database connection)
	Close()
}
