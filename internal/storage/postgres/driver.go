package postgres

import (
	"context"
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/skybi/rendezvous/internal/like"
	"github.com/skybi/rendezvous/internal/message"
	"github.com/skybi/rendezvous/internal/photo"
	"github.com/skybi/rendezvous/internal/reference"
	"github.com/skybi/rendezvous/internal/storage"
	"github.com/skybi/rendezvous/internal/storage/relation"
	"github.com/skybi/rendezvous/internal/user"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Driver represents the PostgreSQL storage driver implementation
type Driver struct {
	dsn       string
	db        *pgxpool.Pool
	users     *UserStore
	photos    *PhotoStore
	likes     *LikeStore
	messages  *MessageStore
	reference *ReferenceStore
}

var _ storage.Driver = (*Driver)(nil)

// New creates a new empty PostgreSQL storage driver.
// Use Initialize to open the database connection and initialize the store implementations.
func New(dsn string) *Driver {
	return &Driver{
		dsn: dsn,
	}
}

// Initialize opens the database connection, migrates the database and initializes the store implementations
func (driver *Driver) Initialize(ctx context.Context) error {
	// Perform SQL migrations
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	migrator, err := migrate.NewWithSourceInstance("iofs", source, driver.dsn)
	if err != nil {
		return err
	}
	defer migrator.Close()
	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	// Initialize the database connection pool
	pool, err := pgxpool.Connect(ctx, driver.dsn)
	if err != nil {
		return err
	}
	driver.db = pool

	// Initialize the store implementations and wire their relations
	driver.users = &UserStore{db: pool, table: userTable()}
	driver.photos = &PhotoStore{db: pool, table: photoTable()}
	driver.likes = &LikeStore{db: pool, table: likeTable()}
	driver.messages = &MessageStore{db: pool, table: messageTable()}
	driver.reference = &ReferenceStore{
		db:       pool,
		regions:  regionTable(),
		cities:   cityTable(),
		genders:  genderTable(),
		statuses: statusTable(),
	}

	src := &relation.Sources{
		Users:     driver.users,
		Photos:    driver.photos,
		Likes:     driver.likes,
		Reference: driver.reference,
	}
	driver.users.table.Loaders = relation.UserLoaders(src)
	driver.messages.table.Loaders = relation.MessageLoaders(src)

	return nil
}

// Users provides the PostgreSQL user store implementation
func (driver *Driver) Users() user.Store {
	return driver.users
}

// Likes provides the PostgreSQL like store implementation
func (driver *Driver) Likes() like.Store {
	return driver.likes
}

// Messages provides the PostgreSQL message store implementation
func (driver *Driver) Messages() message.Store {
	return driver.messages
}

// Photos provides the PostgreSQL photo store implementation
func (driver *Driver) Photos() photo.Store {
	return driver.photos
}

// Reference provides the PostgreSQL reference data store implementation
func (driver *Driver) Reference() reference.Store {
	return driver.reference
}

// Close discards the store implementations and closes the database connection
func (driver *Driver) Close() {
	driver.users = nil
	driver.photos = nil
	driver.likes = nil
	driver.messages = nil
	driver.reference = nil

	driver.db.Close()
	driver.db = nil
}
