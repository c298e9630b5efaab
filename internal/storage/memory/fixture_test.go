package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/skybi/rendezvous/internal/like"
	"github.com/skybi/rendezvous/internal/message"
	"github.com/skybi/rendezvous/internal/photo"
	"github.com/skybi/rendezvous/internal/reference"
	"github.com/skybi/rendezvous/internal/user"
	"github.com/stretchr/testify/require"
)

var fixtureNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func newDriver(t *testing.T) *Driver {
	t.Helper()
	driver := New()
	require.NoError(t, driver.Initialize(context.Background()))
	t.Cleanup(driver.Close)
	require.NoError(t, driver.Seed(
		&reference.Gender{ID: 1, Name: "Male"},
		&reference.Gender{ID: 2, Name: "Female"},
		&reference.Status{ID: 1, Name: "Single"},
		&reference.Region{ID: 1, Name: "North"},
		&reference.City{ID: 1, Name: "Harbor", RegionID: 1},
		&reference.City{ID: 2, Name: "Aston", RegionID: 1},
	))
	return driver
}

func int64Ptr(value int64) *int64 {
	return &value
}

func createUser(t *testing.T, driver *Driver, name string, age int, genderID int64) *user.User {
	t.Helper()
	obj := &user.User{
		Name:        name,
		Surname:     "Surname " + name,
		DateOfBirth: fixtureNow.AddDate(-age, 0, -1),
		Created:     fixtureNow.Add(-time.Hour),
		LastActive:  fixtureNow,
		GenderID:    int64Ptr(genderID),
	}
	require.NoError(t, driver.Users().Create(context.Background(), obj))
	return obj
}

// createUsers creates count users named "user-01", "user-02", ...
func createUsers(t *testing.T, driver *Driver, count int) []*user.User {
	t.Helper()
	users := make([]*user.User, count)
	for i := range users {
		users[i] = createUser(t, driver, fmt.Sprintf("user-%02d", i+1), 30, 1)
	}
	return users
}

func createMessage(t *testing.T, driver *Driver, senderID, recipientID int64, sent time.Time, read bool) *message.Message {
	t.Helper()
	obj := &message.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     fmt.Sprintf("%d -> %d", senderID, recipientID),
		IsRead:      read,
		MessageSent: sent,
	}
	require.NoError(t, driver.Messages().Create(context.Background(), obj))
	return obj
}

func createPhoto(t *testing.T, driver *Driver, userID int64, main bool, added time.Time) *photo.Photo {
	t.Helper()
	obj := &photo.Photo{
		URL:       fmt.Sprintf("https://media.example.com/%d/%d.jpg", userID, added.Unix()),
		DateAdded: added,
		IsMain:    main,
		UserID:    userID,
	}
	require.NoError(t, driver.Photos().Create(context.Background(), obj))
	return obj
}

func createLike(t *testing.T, driver *Driver, likerID, likeeID int64) {
	t.Helper()
	require.NoError(t, driver.Likes().Create(context.Background(), &like.Like{LikerID: likerID, LikeeID: likeeID}))
}

func messageIDs(messages []*message.Message) []int64 {
	ids := make([]int64, len(messages))
	for i, obj := range messages {
		ids[i] = obj.ID
	}
	return ids
}

func userNames(users []*user.User) []string {
	names := make([]string, len(users))
	for i, obj := range users {
		names[i] = obj.Name
	}
	return names
}
