package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/skybi/rendezvous/internal/message"
	"github.com/skybi/rendezvous/internal/query"
)

// MessageStore implements the message.Store interface using PostgreSQL
type MessageStore struct {
	db    *pgxpool.Pool
	table *Table[*message.Message]
}

var _ message.Store = (*MessageStore)(nil)

// Query returns the base collection query over all messages
func (store *MessageStore) Query() query.Queryable[*message.Message] {
	return NewQuery[*message.Message](store.db, store.table)
}

// Create stores a new message and assigns its ID
func (store *MessageStore) Create(ctx context.Context, obj *message.Message) error {
	sql, values, err := squirrel.Insert("messages").
		Columns("sender_id", "recipient_id", "content", "is_read", "date_read", "message_sent").
		Values(obj.SenderID, obj.RecipientID, obj.Content, obj.IsRead, obj.DateRead, obj.MessageSent).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}
	return store.db.QueryRow(ctx, sql, values...).Scan(&obj.ID)
}

// MarkRead marks all given messages as read at the given time using a single statement
func (store *MessageStore) MarkRead(ctx context.Context, ids []int64, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	sql, values, err := markReadQuery(ids, at)
	if err != nil {
		return err
	}
	_, err = store.db.Exec(ctx, sql, values...)
	return err
}

func markReadQuery(ids []int64, at time.Time) (string, []interface{}, error) {
	return squirrel.Update("messages").
		Set("is_read", true).
		Set("date_read", at).
		Where("id = ANY(?)", ids).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}
