package message_test

import (
	"context"
	"testing"
	"time"

	"github.com/skybi/rendezvous/internal/message"
	"github.com/skybi/rendezvous/internal/storage/memory"
	"github.com/skybi/rendezvous/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	service *message.Service
	marks   *markCounter
	a, b    int64
}

// markCounter records every MarkRead call made against the wrapped store
type markCounter struct {
	message.Store
	calls [][]int64
}

func (store *markCounter) MarkRead(ctx context.Context, ids []int64, at time.Time) error {
	store.calls = append(store.calls, ids)
	return store.Store.MarkRead(ctx, ids, at)
}

func newFixture(t *testing.T) *fixture {
	driver := memory.New()
	require.NoError(t, driver.Initialize(context.Background()))
	t.Cleanup(driver.Close)

	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	fix := &fixture{marks: &markCounter{Store: driver.Messages()}}
	fix.service = &message.Service{
		Messages: fix.marks,
		Users:    driver.Users(),
		Now: func() time.Time {
			now = now.Add(time.Minute)
			return now
		},
	}
	for _, id := range []*int64{&fix.a, &fix.b} {
		obj := &user.User{Name: "user", DateOfBirth: now.AddDate(-30, 0, 0)}
		require.NoError(t, driver.Users().Create(context.Background(), obj))
		*id = obj.ID
	}
	return fix
}

func TestCreate(t *testing.T) {
	fix := newFixture(t)
	ctx := context.Background()

	obj, err := fix.service.Create(ctx, fix.a, fix.a, fix.b, "hello")
	require.NoError(t, err)
	assert.NotZero(t, obj.ID)
	assert.False(t, obj.MessageSent.IsZero())
	require.NotNil(t, obj.Sender)
	require.NotNil(t, obj.Recipient)
	assert.Equal(t, fix.b, obj.Recipient.ID)

	_, err = fix.service.Create(ctx, fix.b, fix.a, fix.b, "hello")
	assert.ErrorIs(t, err, message.ErrUnauthorized)
	_, err = fix.service.Create(ctx, fix.a, fix.a, 999, "hello")
	assert.ErrorIs(t, err, message.ErrRecipientNotFound)
	_, err = fix.service.Create(ctx, fix.a, fix.a, fix.b, "   ")
	assert.ErrorIs(t, err, message.ErrEmptyContent)
}

func TestGetByID(t *testing.T) {
	fix := newFixture(t)
	ctx := context.Background()
	obj, err := fix.service.Create(ctx, fix.a, fix.a, fix.b, "hello")
	require.NoError(t, err)

	got, err := fix.service.GetByID(ctx, fix.b, fix.b, obj.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Content)

	_, err = fix.service.GetByID(ctx, fix.a, fix.b, obj.ID)
	assert.ErrorIs(t, err, message.ErrUnauthorized)
	_, err = fix.service.GetByID(ctx, 42, 42, obj.ID)
	assert.ErrorIs(t, err, message.ErrUnauthorized)
	_, err = fix.service.GetByID(ctx, fix.a, fix.a, 999)
	assert.ErrorIs(t, err, message.ErrNotFound)
}

func TestListAndThread(t *testing.T) {
	fix := newFixture(t)
	ctx := context.Background()
	for _, content := range []string{"one", "two", "three"} {
		_, err := fix.service.Create(ctx, fix.a, fix.a, fix.b, content)
		require.NoError(t, err)
	}
	_, err := fix.service.Create(ctx, fix.b, fix.b, fix.a, "reply")
	require.NoError(t, err)

	unread, err := fix.service.List(ctx, fix.b, message.ListParams{UserID: fix.b})
	require.NoError(t, err)
	assert.Equal(t, 3, unread.Metadata.TotalCount)
	assert.Equal(t, "three", unread.Items[0].Content)

	_, err = fix.service.List(ctx, fix.a, message.ListParams{UserID: fix.b})
	assert.ErrorIs(t, err, message.ErrUnauthorized)

	thread, err := fix.service.Thread(ctx, fix.b, fix.b, fix.a)
	require.NoError(t, err)
	require.Len(t, thread, 4)
	assert.Equal(t, "reply", thread[0].Content)
	for _, obj := range thread[1:] {
		assert.True(t, obj.IsRead)
		assert.NotNil(t, obj.DateRead)
	}
	require.Len(t, fix.marks.calls, 1)
	assert.ElementsMatch(t, []int64{thread[1].ID, thread[2].ID, thread[3].ID}, fix.marks.calls[0])

	_, err = fix.service.Thread(ctx, fix.b, fix.b, fix.a)
	require.NoError(t, err)
	assert.Len(t, fix.marks.calls, 1)

	unread, err = fix.service.List(ctx, fix.b, message.ListParams{UserID: fix.b})
	require.NoError(t, err)
	assert.Empty(t, unread.Items)

	inbox, err := fix.service.List(ctx, fix.b, message.ListParams{UserID: fix.b, Container: message.ContainerInbox})
	require.NoError(t, err)
	assert.Len(t, inbox.Items, 3)

	unreadByA, err := fix.service.List(ctx, fix.a, message.ListParams{UserID: fix.a})
	require.NoError(t, err)
	assert.Len(t, unreadByA.Items, 1)
}
