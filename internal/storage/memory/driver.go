package memory

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-memdb"
	"github.com/skybi/rendezvous/internal/like"
	"github.com/skybi/rendezvous/internal/message"
	"github.com/skybi/rendezvous/internal/photo"
	"github.com/skybi/rendezvous/internal/reference"
	"github.com/skybi/rendezvous/internal/storage"
	"github.com/skybi/rendezvous/internal/storage/relation"
	"github.com/skybi/rendezvous/internal/user"
)

// Driver represents the in-memory storage driver built using hashicorp/go-memdb.
// It is meant for development and as a fixture store in tests; nothing is persisted.
type Driver struct {
	db *memdb.MemDB

	// sequences holds the last assigned ID per table; only touched inside write transactions
	sequences map[string]int64

	users     *UserStore
	photos    *PhotoStore
	likes     *LikeStore
	messages  *MessageStore
	reference *ReferenceStore
}

var _ storage.Driver = (*Driver)(nil)

// New creates a new empty in-memory storage driver.
// Use Initialize to create the database and the store implementations.
func New() *Driver {
	return &Driver{}
}

// Initialize creates the in-memory database and the store implementations
func (driver *Driver) Initialize(_ context.Context) error {
	db, err := memdb.NewMemDB(dbSchema)
	if err != nil {
		return err
	}
	driver.db = db
	driver.sequences = make(map[string]int64)

	driver.users = &UserStore{driver: driver, coll: userCollection()}
	driver.photos = &PhotoStore{driver: driver, coll: photoCollection()}
	driver.likes = &LikeStore{driver: driver, coll: likeCollection()}
	driver.messages = &MessageStore{driver: driver, coll: messageCollection()}
	driver.reference = &ReferenceStore{
		driver:   driver,
		regions:  regionCollection(),
		cities:   cityCollection(),
		genders:  genderCollection(),
		statuses: statusCollection(),
	}

	src := &relation.Sources{
		Users:     driver.users,
		Photos:    driver.photos,
		Likes:     driver.likes,
		Reference: driver.reference,
	}
	driver.users.coll.Loaders = relation.UserLoaders(src)
	driver.messages.coll.Loaders = relation.MessageLoaders(src)

	return nil
}

// Users provides the in-memory user store implementation
func (driver *Driver) Users() user.Store {
	return driver.users
}

// Likes provides the in-memory like store implementation
func (driver *Driver) Likes() like.Store {
	return driver.likes
}

// Messages provides the in-memory message store implementation
func (driver *Driver) Messages() message.Store {
	return driver.messages
}

// Photos provides the in-memory photo store implementation
func (driver *Driver) Photos() photo.Store {
	return driver.photos
}

// Reference provides the in-memory reference data store implementation
func (driver *Driver) Reference() reference.Store {
	return driver.reference
}

// Close discards the database and the store implementations
func (driver *Driver) Close() {
	driver.users = nil
	driver.photos = nil
	driver.likes = nil
	driver.messages = nil
	driver.reference = nil
	driver.db = nil
}

// Seed inserts reference records as they are.
// Supported are regions, cities, genders and statuses; their IDs have to be set.
func (driver *Driver) Seed(records ...any) error {
	txn := driver.db.Txn(true)
	defer txn.Abort()

	for _, record := range records {
		var table string
		var id int64
		switch obj := record.(type) {
		case *reference.Region:
			table, id = tableRegions, obj.ID
		case *reference.City:
			table, id = tableCities, obj.ID
		case *reference.Gender:
			table, id = tableGenders, obj.ID
		case *reference.Status:
			table, id = tableStatuses, obj.ID
		default:
			return fmt.Errorf("cannot seed records of type %T", record)
		}
		if err := txn.Insert(table, record); err != nil {
			return err
		}
		if id > driver.sequences[table] {
			driver.sequences[table] = id
		}
	}

	txn.Commit()
	return nil
}

// nextID returns the next ID of a table.
// Must only be called while holding a write transaction.
func (driver *Driver) nextID(table string) int64 {
	driver.sequences[table]++
	return driver.sequences[table]
}
