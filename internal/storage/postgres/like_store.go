package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/skybi/rendezvous/internal/like"
	"github.com/skybi/rendezvous/internal/query"
)

// LikeStore implements the like.Store interface using PostgreSQL
type LikeStore struct {
	db    *pgxpool.Pool
	table *Table[*like.Like]
}

var _ like.Store = (*LikeStore)(nil)

// Query returns the base collection query over all likes
func (store *LikeStore) Query() query.Queryable[*like.Like] {
	return NewQuery[*like.Like](store.db, store.table)
}

// Create stores a new like; liking the same user twice is a no-op
func (store *LikeStore) Create(ctx context.Context, obj *like.Like) error {
	_, err := store.db.Exec(ctx, "INSERT INTO likes VALUES ($1, $2) ON CONFLICT DO NOTHING", obj.LikerID, obj.LikeeID)
	return err
}
