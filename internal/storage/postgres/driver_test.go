package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/skybi/rendezvous/internal/like"
	"github.com/skybi/rendezvous/internal/message"
	"github.com/skybi/rendezvous/internal/query"
	"github.com/skybi/rendezvous/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDriver connects to the database referenced by TEST_POSTGRES_DSN and empties every entity table.
// The test is skipped if the variable is not set.
func newTestDriver(t *testing.T) *Driver {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN is not set")
	}

	ctx := context.Background()
	driver := New(dsn)
	require.NoError(t, driver.Initialize(ctx))
	t.Cleanup(driver.Close)

	_, err := driver.db.Exec(ctx, "TRUNCATE messages, likes, photos, users RESTART IDENTITY CASCADE")
	require.NoError(t, err)
	return driver
}

func TestPostgresUserPaging(t *testing.T) {
	driver := newTestDriver(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for i := 1; i <= 25; i++ {
		require.NoError(t, driver.Users().Create(ctx, &user.User{
			Name:        fmt.Sprintf("user-%02d", i),
			DateOfBirth: now.AddDate(-30, 0, 0),
			Created:     now,
			LastActive:  now,
		}))
	}

	params := user.DefaultSearchParams()
	params.PageIndex = 2
	params.SetPageSize(10)
	filter := &user.Filter{SearchParams: params, Now: now}

	page, err := query.Paginate(ctx, driver.Users().Query(), user.NewSearchSpecification(filter), user.NewCountSpecification(filter), params.PageParams)
	require.NoError(t, err)
	require.Len(t, page.Items, 10)
	assert.Equal(t, "user-11", page.Items[0].Name)
	assert.Equal(t, "user-20", page.Items[9].Name)
	assert.Equal(t, 25, page.Metadata.TotalCount)
	assert.Equal(t, 3, page.Metadata.TotalPages)
	assert.NotNil(t, page.Items[0].Photos)
}

func TestPostgresMessagesAndLikes(t *testing.T) {
	driver := newTestDriver(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	a := &user.User{Name: "a", DateOfBirth: now.AddDate(-30, 0, 0), Created: now, LastActive: now}
	b := &user.User{Name: "b", DateOfBirth: now.AddDate(-30, 0, 0), Created: now, LastActive: now}
	require.NoError(t, driver.Users().Create(ctx, a))
	require.NoError(t, driver.Users().Create(ctx, b))

	first := &message.Message{SenderID: a.ID, RecipientID: b.ID, Content: "hi", MessageSent: now}
	second := &message.Message{SenderID: b.ID, RecipientID: a.ID, Content: "hello", MessageSent: now.Add(time.Minute)}
	require.NoError(t, driver.Messages().Create(ctx, first))
	require.NoError(t, driver.Messages().Create(ctx, second))

	thread, err := query.Evaluate(driver.Messages().Query(), message.NewThreadSpecification(b.ID, a.ID)).List(ctx)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, second.ID, thread[0].ID)
	require.NotNil(t, thread[0].Sender)
	assert.Equal(t, "b", thread[0].Sender.Name)

	require.NoError(t, driver.Likes().Create(ctx, &like.Like{LikerID: a.ID, LikeeID: b.ID}))
	exists, err := like.Exists(ctx, driver.Likes().Query(), a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = like.Exists(ctx, driver.Likes().Query(), b.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, driver.Users().UpdateLastActive(ctx, map[int64]time.Time{a.ID: now.Add(time.Hour)}))
	users, err := driver.Users().Query().OrderByDescending(user.FieldLastActive).List(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.ID, users[0].ID)
}
