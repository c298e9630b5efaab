package postgres

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/skybi/rendezvous/internal/photo"
	"github.com/skybi/rendezvous/internal/query"
)

// PhotoStore implements the photo.Store interface using PostgreSQL
type PhotoStore struct {
	db    *pgxpool.Pool
	table *Table[*photo.Photo]
}

var _ photo.Store = (*PhotoStore)(nil)

// Query returns the base collection query over all photos
func (store *PhotoStore) Query() query.Queryable[*photo.Photo] {
	return NewQuery[*photo.Photo](store.db, store.table)
}

// Create stores a new photo and assigns its ID
func (store *PhotoStore) Create(ctx context.Context, obj *photo.Photo) error {
	sql, values, err := squirrel.Insert("photos").
		Columns("url", "description", "date_added", "is_main", "public_id", "user_id").
		Values(obj.URL, obj.Description, obj.DateAdded, obj.IsMain, obj.PublicID, obj.UserID).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}
	return store.db.QueryRow(ctx, sql, values...).Scan(&obj.ID)
}

// SetMain marks a photo as the main photo of a user and unmarks the previous one atomically
func (store *PhotoStore) SetMain(ctx context.Context, userID, photoID int64) error {
	_, err := store.db.Exec(ctx, "UPDATE photos SET is_main = (id = $2) WHERE user_id = $1 AND (is_main OR id = $2)", userID, photoID)
	return err
}

// Delete deletes a photo by its ID
func (store *PhotoStore) Delete(ctx context.Context, id int64) error {
	_, err := store.db.Exec(ctx, "DELETE FROM photos WHERE id = $1", id)
	return err
}
