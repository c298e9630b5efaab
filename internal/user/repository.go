package user

import (
	"context"
	"time"

	"github.com/skybi/rendezvous/internal/query"
)

// Store defines the user storage API
type Store interface {
	// Query returns the base collection query over all users
	Query() query.Queryable[*User]

	// Create stores a new user and assigns its ID
	Create(ctx context.Context, obj *User) error

	// Update updates an existing user
	Update(ctx context.Context, id int64, update *Update) error

	// UpdateLastActive sets the last activity time of many users at once
	UpdateLastActive(ctx context.Context, seen map[int64]time.Time) error
}

// Update is used to update an existing user
type Update struct {
	Name      *string
	Surname   *string
	Interests *string
	GenderID  *int64
	StatusID  *int64
	CityID    *int64
	RegionID  *int64
}

// IsEmpty reports whether the update changes nothing
func (update *Update) IsEmpty() bool {
	return update.Name == nil && update.Surname == nil && update.Interests == nil &&
		update.GenderID == nil && update.StatusID == nil && update.CityID == nil && update.RegionID == nil
}
