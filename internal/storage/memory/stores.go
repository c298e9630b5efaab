package memory

import (
	"context"
	"time"

	"github.com/hashicorp/go-memdb"
	"github.com/skybi/rendezvous/internal/like"
	"github.com/skybi/rendezvous/internal/message"
	"github.com/skybi/rendezvous/internal/photo"
	"github.com/skybi/rendezvous/internal/query"
	"github.com/skybi/rendezvous/internal/reference"
	"github.com/skybi/rendezvous/internal/user"
)

// UserStore implements the user.Store interface using go-memdb
type UserStore struct {
	driver *Driver
	coll   *Collection[*user.User]
}

var _ user.Store = (*UserStore)(nil)

// Query returns the base collection query over all users
func (store *UserStore) Query() query.Queryable[*user.User] {
	return NewQuery(store.driver.db, store.coll)
}

// Create stores a new user and assigns its ID
func (store *UserStore) Create(_ context.Context, obj *user.User) error {
	txn := store.driver.db.Txn(true)
	defer txn.Abort()

	obj.ID = store.driver.nextID(tableUsers)
	if err := txn.Insert(tableUsers, store.coll.Clone(obj)); err != nil {
		return err
	}

	txn.Commit()
	return nil
}

// Update updates an existing user
func (store *UserStore) Update(_ context.Context, id int64, update *user.Update) error {
	txn := store.driver.db.Txn(true)
	defer txn.Abort()

	err := modify(txn, store.coll, id, func(obj *user.User) {
		if update.Name != nil {
			obj.Name = *update.Name
		}
		if update.Surname != nil {
			obj.Surname = *update.Surname
		}
		if update.Interests != nil {
			obj.Interests = *update.Interests
		}
		if update.GenderID != nil {
			obj.GenderID = cloneInt64(update.GenderID)
		}
		if update.StatusID != nil {
			obj.StatusID = cloneInt64(update.StatusID)
		}
		if update.CityID != nil {
			obj.CityID = cloneInt64(update.CityID)
		}
		if update.RegionID != nil {
			obj.RegionID = cloneInt64(update.RegionID)
		}
	})
	if err != nil {
		return err
	}

	txn.Commit()
	return nil
}

// UpdateLastActive sets the last activity time of many users at once
func (store *UserStore) UpdateLastActive(_ context.Context, seen map[int64]time.Time) error {
	txn := store.driver.db.Txn(true)
	defer txn.Abort()

	for id, at := range seen {
		at := at
		if err := modify(txn, store.coll, id, func(obj *user.User) { obj.LastActive = at }); err != nil {
			return err
		}
	}

	txn.Commit()
	return nil
}

// PhotoStore implements the photo.Store interface using go-memdb
type PhotoStore struct {
	driver *Driver
	coll   *Collection[*photo.Photo]
}

var _ photo.Store = (*PhotoStore)(nil)

// Query returns the base collection query over all photos
func (store *PhotoStore) Query() query.Queryable[*photo.Photo] {
	return NewQuery(store.driver.db, store.coll)
}

// Create stores a new photo and assigns its ID
func (store *PhotoStore) Create(_ context.Context, obj *photo.Photo) error {
	txn := store.driver.db.Txn(true)
	defer txn.Abort()

	obj.ID = store.driver.nextID(tablePhotos)
	if err := txn.Insert(tablePhotos, store.coll.Clone(obj)); err != nil {
		return err
	}

	txn.Commit()
	return nil
}

// SetMain marks a photo as the main photo of a user and unmarks the previous one
func (store *PhotoStore) SetMain(_ context.Context, userID, photoID int64) error {
	txn := store.driver.db.Txn(true)
	defer txn.Abort()

	it, err := txn.Get(tablePhotos, "userID", userID)
	if err != nil {
		return err
	}
	var changed []*photo.Photo
	for obj := it.Next(); obj != nil; obj = it.Next() {
		current := obj.(*photo.Photo)
		main := current.ID == photoID
		if current.IsMain != main {
			cpy := store.coll.Clone(current)
			cpy.IsMain = main
			changed = append(changed, cpy)
		}
	}
	for _, obj := range changed {
		if err := txn.Insert(tablePhotos, obj); err != nil {
			return err
		}
	}

	txn.Commit()
	return nil
}

// Delete deletes a photo by its ID
func (store *PhotoStore) Delete(_ context.Context, id int64) error {
	txn := store.driver.db.Txn(true)
	defer txn.Abort()

	if _, err := txn.DeleteAll(tablePhotos, "id", id); err != nil {
		return err
	}

	txn.Commit()
	return nil
}

// LikeStore implements the like.Store interface using go-memdb
type LikeStore struct {
	driver *Driver
	coll   *Collection[*like.Like]
}

var _ like.Store = (*LikeStore)(nil)

// Query returns the base collection query over all likes
func (store *LikeStore) Query() query.Queryable[*like.Like] {
	return NewQuery(store.driver.db, store.coll)
}

// Create stores a new like
func (store *LikeStore) Create(_ context.Context, obj *like.Like) error {
	txn := store.driver.db.Txn(true)
	defer txn.Abort()

	if err := txn.Insert(tableLikes, store.coll.Clone(obj)); err != nil {
		return err
	}

	txn.Commit()
	return nil
}

// MessageStore implements the message.Store interface using go-memdb
type MessageStore struct {
	driver *Driver
	coll   *Collection[*message.Message]
}

var _ message.Store = (*MessageStore)(nil)

// Query returns the base collection query over all messages
func (store *MessageStore) Query() query.Queryable[*message.Message] {
	return NewQuery(store.driver.db, store.coll)
}

// Create stores a new message and assigns its ID
func (store *MessageStore) Create(_ context.Context, obj *message.Message) error {
	txn := store.driver.db.Txn(true)
	defer txn.Abort()

	obj.ID = store.driver.nextID(tableMessages)
	if err := txn.Insert(tableMessages, store.coll.Clone(obj)); err != nil {
		return err
	}

	txn.Commit()
	return nil
}

// MarkRead marks all given messages as read at the given time within a single transaction
func (store *MessageStore) MarkRead(_ context.Context, ids []int64, at time.Time) error {
	txn := store.driver.db.Txn(true)
	defer txn.Abort()

	for _, id := range ids {
		err := modify(txn, store.coll, id, func(obj *message.Message) {
			obj.IsRead = true
			obj.DateRead = &at
		})
		if err != nil {
			return err
		}
	}

	txn.Commit()
	return nil
}

// ReferenceStore implements the reference.Store interface using go-memdb
type ReferenceStore struct {
	driver   *Driver
	regions  *Collection[*reference.Region]
	cities   *Collection[*reference.City]
	genders  *Collection[*reference.Gender]
	statuses *Collection[*reference.Status]
}

var _ reference.Store = (*ReferenceStore)(nil)

func (store *ReferenceStore) Regions() query.Queryable[*reference.Region] {
	return NewQuery(store.driver.db, store.regions)
}

func (store *ReferenceStore) Cities() query.Queryable[*reference.City] {
	return NewQuery(store.driver.db, store.cities)
}

func (store *ReferenceStore) Genders() query.Queryable[*reference.Gender] {
	return NewQuery(store.driver.db, store.genders)
}

func (store *ReferenceStore) Statuses() query.Queryable[*reference.Status] {
	return NewQuery(store.driver.db, store.statuses)
}

// modify replaces the record with the given ID by a modified copy.
// Records that do not exist are ignored.
func modify[T any](txn *memdb.Txn, coll *Collection[T], id int64, apply func(T)) error {
	raw, err := txn.First(coll.Table, "id", id)
	if err != nil {
		return err
	}
	if raw == nil {
		return nil
	}
	cpy := coll.Clone(raw.(T))
	apply(cpy)
	return txn.Insert(coll.Table, cpy)
}
