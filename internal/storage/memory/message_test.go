package memory

import (
	"context"
	"testing"
	"time"

	"github.com/skybi/rendezvous/internal/message"
	"github.com/skybi/rendezvous/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type messageFixture struct {
	driver  *Driver
	a, b, c int64

	// messages in the order they were sent
	aToB1, bToA1, aToC, cToA, aToB2, bToA2 *message.Message
}

func newMessageFixture(t *testing.T) *messageFixture {
	driver := newDriver(t)
	users := createUsers(t, driver, 3)
	fix := &messageFixture{driver: driver, a: users[0].ID, b: users[1].ID, c: users[2].ID}

	sent := func(minutes int) time.Time {
		return fixtureNow.Add(time.Duration(minutes) * time.Minute)
	}
	fix.aToB1 = createMessage(t, driver, fix.a, fix.b, sent(1), true)
	fix.bToA1 = createMessage(t, driver, fix.b, fix.a, sent(2), true)
	fix.aToC = createMessage(t, driver, fix.a, fix.c, sent(3), false)
	fix.cToA = createMessage(t, driver, fix.c, fix.a, sent(4), false)
	fix.aToB2 = createMessage(t, driver, fix.a, fix.b, sent(5), false)
	fix.bToA2 = createMessage(t, driver, fix.b, fix.a, sent(6), false)
	return fix
}

func (fix *messageFixture) list(t *testing.T, spec *query.Specification[*message.Message]) []int64 {
	t.Helper()
	messages, err := query.Evaluate(fix.driver.Messages().Query(), spec).List(context.Background())
	require.NoError(t, err)
	return messageIDs(messages)
}

func (fix *messageFixture) count(t *testing.T, spec *query.Specification[*message.Message]) int {
	t.Helper()
	n, err := query.Evaluate(fix.driver.Messages().Query(), spec).Count(context.Background())
	require.NoError(t, err)
	return n
}

func TestInboxContainsReceivedMessagesNewestFirst(t *testing.T) {
	fix := newMessageFixture(t)
	params := message.ListParams{UserID: fix.a, Container: message.ContainerInbox}

	assert.Equal(t, []int64{fix.bToA2.ID, fix.cToA.ID, fix.bToA1.ID}, fix.list(t, message.NewContainerSpecification(params)))
	assert.Equal(t, 3, fix.count(t, message.NewContainerCountSpecification(params)))
}

func TestOutboxContainsSentMessagesNewestFirst(t *testing.T) {
	fix := newMessageFixture(t)
	params := message.ListParams{UserID: fix.a, Container: message.ContainerOutbox}

	assert.Equal(t, []int64{fix.aToB2.ID, fix.aToC.ID, fix.aToB1.ID}, fix.list(t, message.NewContainerSpecification(params)))
	assert.Equal(t, 3, fix.count(t, message.NewContainerCountSpecification(params)))
}

func TestUnknownContainersFallBackToUnread(t *testing.T) {
	fix := newMessageFixture(t)
	expected := []int64{fix.bToA2.ID, fix.cToA.ID}

	for _, container := range []string{message.ContainerUnread, "", "Archive", "inbox"} {
		params := message.ListParams{UserID: fix.a, Container: container}
		assert.Equal(t, expected, fix.list(t, message.NewContainerSpecification(params)), "container %q", container)
		assert.Equal(t, len(expected), fix.count(t, message.NewContainerCountSpecification(params)), "container %q", container)
	}
}

func TestContainerPageWindow(t *testing.T) {
	fix := newMessageFixture(t)
	params := message.ListParams{
		PageParams: query.PageParams{PageIndex: 2, PageSize: 2},
		UserID:     fix.a,
		Container:  message.ContainerInbox,
	}

	assert.Equal(t, []int64{fix.bToA1.ID}, fix.list(t, message.NewContainerPageSpecification(params)))
}

func TestThreadIsSymmetric(t *testing.T) {
	fix := newMessageFixture(t)
	expected := []int64{fix.bToA2.ID, fix.aToB2.ID, fix.bToA1.ID, fix.aToB1.ID}

	assert.Equal(t, expected, fix.list(t, message.NewThreadSpecification(fix.a, fix.b)))
	assert.Equal(t, expected, fix.list(t, message.NewThreadSpecification(fix.b, fix.a)))
	assert.Empty(t, fix.list(t, message.NewThreadSpecification(fix.b, fix.c)))
}

func TestMessageIncludesLoadParticipantsWithPhotos(t *testing.T) {
	fix := newMessageFixture(t)
	main := createPhoto(t, fix.driver, fix.b, true, fixtureNow)
	createPhoto(t, fix.driver, fix.b, false, fixtureNow.Add(time.Minute))

	obj, ok, err := query.Evaluate(fix.driver.Messages().Query(), message.NewByIDSpecification(fix.bToA1.ID)).First(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	require.NotNil(t, obj.Sender)
	require.NotNil(t, obj.Recipient)
	assert.Equal(t, fix.b, obj.Sender.ID)
	assert.Equal(t, fix.a, obj.Recipient.ID)
	assert.Len(t, obj.Sender.Photos, 2)
	assert.Equal(t, main.URL, obj.Sender.MainPhotoURL())
	assert.Empty(t, obj.Recipient.Photos)
}

func TestParticipantPhotosImplyParticipant(t *testing.T) {
	fix := newMessageFixture(t)
	createPhoto(t, fix.driver, fix.a, true, fixtureNow)

	messages, err := fix.driver.Messages().Query().
		Where(query.Eq{Field: message.FieldSenderID, Value: fix.a}).
		Include(message.IncludeSenderPhotos).
		List(context.Background())
	require.NoError(t, err)
	require.Len(t, messages, 3)
	for _, obj := range messages {
		require.NotNil(t, obj.Sender)
		assert.Len(t, obj.Sender.Photos, 1)
		assert.Nil(t, obj.Recipient)
	}
}

func TestMarkRead(t *testing.T) {
	fix := newMessageFixture(t)
	at := fixtureNow.Add(time.Hour)
	require.NoError(t, fix.driver.Messages().MarkRead(context.Background(), []int64{fix.cToA.ID}, at))

	params := message.ListParams{UserID: fix.a}
	assert.Equal(t, []int64{fix.bToA2.ID}, fix.list(t, message.NewContainerSpecification(params)))

	obj, _, err := query.Evaluate(fix.driver.Messages().Query(), message.NewByIDSpecification(fix.cToA.ID)).First(context.Background())
	require.NoError(t, err)
	assert.True(t, obj.IsRead)
	require.NotNil(t, obj.DateRead)
	assert.True(t, at.Equal(*obj.DateRead))
}

func TestMarkReadMany(t *testing.T) {
	fix := newMessageFixture(t)
	at := fixtureNow.Add(time.Hour)
	require.NoError(t, fix.driver.Messages().MarkRead(context.Background(), []int64{fix.cToA.ID, fix.bToA2.ID, 999}, at))

	assert.Empty(t, fix.list(t, message.NewContainerSpecification(message.ListParams{UserID: fix.a})))
	assert.Equal(t, []int64{fix.aToB2.ID}, fix.list(t, message.NewContainerSpecification(message.ListParams{UserID: fix.b})))

	require.NoError(t, fix.driver.Messages().MarkRead(context.Background(), nil, at))
}
