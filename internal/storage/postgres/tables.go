package postgres

import (
	"github.com/jackc/pgx/v4"
	"github.com/skybi/rendezvous/internal/like"
	"github.com/skybi/rendezvous/internal/message"
	"github.com/skybi/rendezvous/internal/photo"
	"github.com/skybi/rendezvous/internal/query"
	"github.com/skybi/rendezvous/internal/reference"
	"github.com/skybi/rendezvous/internal/user"
)

func userTable() *Table[*user.User] {
	return &Table[*user.User]{
		Name: "users",
		Columns: []string{
			"id", "name", "surname", "date_of_birth", "created", "last_active", "interests",
			"gender_id", "status_id", "city_id", "region_id",
		},
		Key: []string{"id"},
		Fields: map[query.Field]string{
			user.FieldID:          "id",
			user.FieldName:        "name",
			user.FieldSurname:     "surname",
			user.FieldDateOfBirth: "date_of_birth",
			user.FieldCreated:     "created",
			user.FieldLastActive:  "last_active",
			user.FieldGenderID:    "gender_id",
			user.FieldStatusID:    "status_id",
			user.FieldCityID:      "city_id",
			user.FieldRegionID:    "region_id",
		},
		Scan: rowToUser,
	}
}

func rowToUser(row pgx.Row) (*user.User, error) {
	obj := new(user.User)
	err := row.Scan(
		&obj.ID,
		&obj.Name,
		&obj.Surname,
		&obj.DateOfBirth,
		&obj.Created,
		&obj.LastActive,
		&obj.Interests,
		&obj.GenderID,
		&obj.StatusID,
		&obj.CityID,
		&obj.RegionID,
	)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

func photoTable() *Table[*photo.Photo] {
	return &Table[*photo.Photo]{
		Name:    "photos",
		Columns: []string{"id", "url", "description", "date_added", "is_main", "public_id", "user_id"},
		Key:     []string{"id"},
		Fields: map[query.Field]string{
			photo.FieldID:        "id",
			photo.FieldUserID:    "user_id",
			photo.FieldIsMain:    "is_main",
			photo.FieldDateAdded: "date_added",
		},
		Scan: rowToPhoto,
	}
}

func rowToPhoto(row pgx.Row) (*photo.Photo, error) {
	obj := new(photo.Photo)
	if err := row.Scan(&obj.ID, &obj.URL, &obj.Description, &obj.DateAdded, &obj.IsMain, &obj.PublicID, &obj.UserID); err != nil {
		return nil, err
	}
	return obj, nil
}

func likeTable() *Table[*like.Like] {
	return &Table[*like.Like]{
		Name:    "likes",
		Columns: []string{"liker_id", "likee_id"},
		Key:     []string{"liker_id", "likee_id"},
		Fields: map[query.Field]string{
			like.FieldLikerID: "liker_id",
			like.FieldLikeeID: "likee_id",
		},
		Scan: rowToLike,
	}
}

func rowToLike(row pgx.Row) (*like.Like, error) {
	obj := new(like.Like)
	if err := row.Scan(&obj.LikerID, &obj.LikeeID); err != nil {
		return nil, err
	}
	return obj, nil
}

func messageTable() *Table[*message.Message] {
	return &Table[*message.Message]{
		Name:    "messages",
		Columns: []string{"id", "sender_id", "recipient_id", "content", "is_read", "date_read", "message_sent"},
		Key:     []string{"id"},
		Fields: map[query.Field]string{
			message.FieldID:          "id",
			message.FieldSenderID:    "sender_id",
			message.FieldRecipientID: "recipient_id",
			message.FieldIsRead:      "is_read",
			message.FieldMessageSent: "message_sent",
		},
		Scan: rowToMessage,
	}
}

func rowToMessage(row pgx.Row) (*message.Message, error) {
	obj := new(message.Message)
	err := row.Scan(
		&obj.ID,
		&obj.SenderID,
		&obj.RecipientID,
		&obj.Content,
		&obj.IsRead,
		&obj.DateRead,
		&obj.MessageSent,
	)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// referenceTable builds the table of a reference record consisting of an ID and a name
func referenceTable[T any](name string, scan func(row pgx.Row) (T, error)) *Table[T] {
	return &Table[T]{
		Name:    name,
		Columns: []string{"id", "name"},
		Key:     []string{"id"},
		Fields: map[query.Field]string{
			reference.FieldID:   "id",
			reference.FieldName: "name",
		},
		Scan: scan,
	}
}

func regionTable() *Table[*reference.Region] {
	return referenceTable("regions", func(row pgx.Row) (*reference.Region, error) {
		obj := new(reference.Region)
		if err := row.Scan(&obj.ID, &obj.Name); err != nil {
			return nil, err
		}
		return obj, nil
	})
}

func cityTable() *Table[*reference.City] {
	table := referenceTable("cities", func(row pgx.Row) (*reference.City, error) {
		obj := new(reference.City)
		if err := row.Scan(&obj.ID, &obj.Name, &obj.RegionID); err != nil {
			return nil, err
		}
		return obj, nil
	})
	table.Columns = append(table.Columns, "region_id")
	table.Fields[reference.FieldRegionID] = "region_id"
	return table
}

func genderTable() *Table[*reference.Gender] {
	return referenceTable("genders", func(row pgx.Row) (*reference.Gender, error) {
		obj := new(reference.Gender)
		if err := row.Scan(&obj.ID, &obj.Name); err != nil {
			return nil, err
		}
		return obj, nil
	})
}

func statusTable() *Table[*reference.Status] {
	return referenceTable("statuses", func(row pgx.Row) (*reference.Status, error) {
		obj := new(reference.Status)
		if err := row.Scan(&obj.ID, &obj.Name); err != nil {
			return nil, err
		}
		return obj, nil
	})
}
