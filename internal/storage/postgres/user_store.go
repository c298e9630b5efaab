package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/skybi/rendezvous/internal/query"
	"github.com/skybi/rendezvous/internal/user"
)

// UserStore implements the user.Store interface using PostgreSQL
type UserStore struct {
	db    *pgxpool.Pool
	table *Table[*user.User]
}

var _ user.Store = (*UserStore)(nil)

// Query returns the base collection query over all users
func (store *UserStore) Query() query.Queryable[*user.User] {
	return NewQuery[*user.User](store.db, store.table)
}

// Create stores a new user and assigns its ID
func (store *UserStore) Create(ctx context.Context, obj *user.User) error {
	sql, values, err := squirrel.Insert("users").
		Columns("name", "surname", "date_of_birth", "created", "last_active", "interests", "gender_id", "status_id", "city_id", "region_id").
		Values(obj.Name, obj.Surname, obj.DateOfBirth, obj.Created, obj.LastActive, obj.Interests, obj.GenderID, obj.StatusID, obj.CityID, obj.RegionID).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}
	return store.db.QueryRow(ctx, sql, values...).Scan(&obj.ID)
}

// Update updates an existing user
func (store *UserStore) Update(ctx context.Context, id int64, update *user.Update) error {
	if update.IsEmpty() {
		return nil
	}

	stmt := squirrel.Update("users").Where(squirrel.Eq{"id": id})
	if update.Name != nil {
		stmt = stmt.Set("name", *update.Name)
	}
	if update.Surname != nil {
		stmt = stmt.Set("surname", *update.Surname)
	}
	if update.Interests != nil {
		stmt = stmt.Set("interests", *update.Interests)
	}
	if update.GenderID != nil {
		stmt = stmt.Set("gender_id", *update.GenderID)
	}
	if update.StatusID != nil {
		stmt = stmt.Set("status_id", *update.StatusID)
	}
	if update.CityID != nil {
		stmt = stmt.Set("city_id", *update.CityID)
	}
	if update.RegionID != nil {
		stmt = stmt.Set("region_id", *update.RegionID)
	}
	sql, values, err := stmt.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return err
	}

	_, err = store.db.Exec(ctx, sql, values...)
	return err
}

// UpdateLastActive sets the last activity time of many users at once
func (store *UserStore) UpdateLastActive(ctx context.Context, seen map[int64]time.Time) error {
	if len(seen) == 0 {
		return nil
	}

	tx, err := store.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for id, at := range seen {
		batch.Queue("UPDATE users SET last_active = $1 WHERE id = $2 AND last_active < $1", at, id)
	}
	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return err
		}
	}
	if err := results.Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
