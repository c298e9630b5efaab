package memory

import (
	"github.com/skybi/rendezvous/internal/like"
	"github.com/skybi/rendezvous/internal/message"
	"github.com/skybi/rendezvous/internal/photo"
	"github.com/skybi/rendezvous/internal/query"
	"github.com/skybi/rendezvous/internal/reference"
	"github.com/skybi/rendezvous/internal/user"
)

func userCollection() *Collection[*user.User] {
	return &Collection[*user.User]{
		Table: tableUsers,
		Fields: map[query.Field]func(*user.User) any{
			user.FieldID:          func(obj *user.User) any { return obj.ID },
			user.FieldName:        func(obj *user.User) any { return obj.Name },
			user.FieldSurname:     func(obj *user.User) any { return obj.Surname },
			user.FieldDateOfBirth: func(obj *user.User) any { return obj.DateOfBirth },
			user.FieldCreated:     func(obj *user.User) any { return obj.Created },
			user.FieldLastActive:  func(obj *user.User) any { return obj.LastActive },
			user.FieldGenderID:    func(obj *user.User) any { return obj.GenderID },
			user.FieldStatusID:    func(obj *user.User) any { return obj.StatusID },
			user.FieldCityID:      func(obj *user.User) any { return obj.CityID },
			user.FieldRegionID:    func(obj *user.User) any { return obj.RegionID },
		},
		Less: func(a, b *user.User) bool { return a.ID < b.ID },
		Clone: func(obj *user.User) *user.User {
			cpy := *obj
			cpy.GenderID = cloneInt64(obj.GenderID)
			cpy.StatusID = cloneInt64(obj.StatusID)
			cpy.CityID = cloneInt64(obj.CityID)
			cpy.RegionID = cloneInt64(obj.RegionID)
			cpy.Gender, cpy.Status, cpy.City, cpy.Region = nil, nil, nil, nil
			cpy.Photos, cpy.Likers, cpy.Likees = nil, nil, nil
			return &cpy
		},
	}
}

func photoCollection() *Collection[*photo.Photo] {
	return &Collection[*photo.Photo]{
		Table: tablePhotos,
		Fields: map[query.Field]func(*photo.Photo) any{
			photo.FieldID:        func(obj *photo.Photo) any { return obj.ID },
			photo.FieldUserID:    func(obj *photo.Photo) any { return obj.UserID },
			photo.FieldIsMain:    func(obj *photo.Photo) any { return obj.IsMain },
			photo.FieldDateAdded: func(obj *photo.Photo) any { return obj.DateAdded },
		},
		Less: func(a, b *photo.Photo) bool { return a.ID < b.ID },
		Clone: func(obj *photo.Photo) *photo.Photo {
			cpy := *obj
			return &cpy
		},
	}
}

func likeCollection() *Collection[*like.Like] {
	return &Collection[*like.Like]{
		Table: tableLikes,
		Fields: map[query.Field]func(*like.Like) any{
			like.FieldLikerID: func(obj *like.Like) any { return obj.LikerID },
			like.FieldLikeeID: func(obj *like.Like) any { return obj.LikeeID },
		},
		Less: func(a, b *like.Like) bool {
			if a.LikerID != b.LikerID {
				return a.LikerID < b.LikerID
			}
			return a.LikeeID < b.LikeeID
		},
		Clone: func(obj *like.Like) *like.Like {
			cpy := *obj
			return &cpy
		},
	}
}

func messageCollection() *Collection[*message.Message] {
	return &Collection[*message.Message]{
		Table: tableMessages,
		Fields: map[query.Field]func(*message.Message) any{
			message.FieldID:          func(obj *message.Message) any { return obj.ID },
			message.FieldSenderID:    func(obj *message.Message) any { return obj.SenderID },
			message.FieldRecipientID: func(obj *message.Message) any { return obj.RecipientID },
			message.FieldIsRead:      func(obj *message.Message) any { return obj.IsRead },
			message.FieldMessageSent: func(obj *message.Message) any { return obj.MessageSent },
		},
		Less: func(a, b *message.Message) bool { return a.ID < b.ID },
		Clone: func(obj *message.Message) *message.Message {
			cpy := *obj
			if obj.DateRead != nil {
				read := *obj.DateRead
				cpy.DateRead = &read
			}
			cpy.Sender = nil
			cpy.Recipient = nil
			return &cpy
		},
	}
}

// referenceCollection builds the collection of a reference table whose records only consist of an ID and a name
func referenceCollection[T any](table string, id func(*T) int64, name func(*T) string) *Collection[*T] {
	return &Collection[*T]{
		Table: table,
		Fields: map[query.Field]func(*T) any{
			reference.FieldID:   func(obj *T) any { return id(obj) },
			reference.FieldName: func(obj *T) any { return name(obj) },
		},
		Less: func(a, b *T) bool { return id(a) < id(b) },
		Clone: func(obj *T) *T {
			cpy := *obj
			return &cpy
		},
	}
}

func regionCollection() *Collection[*reference.Region] {
	return referenceCollection(tableRegions,
		func(obj *reference.Region) int64 { return obj.ID },
		func(obj *reference.Region) string { return obj.Name })
}

func cityCollection() *Collection[*reference.City] {
	coll := referenceCollection(tableCities,
		func(obj *reference.City) int64 { return obj.ID },
		func(obj *reference.City) string { return obj.Name })
	coll.Fields[reference.FieldRegionID] = func(obj *reference.City) any { return obj.RegionID }
	return coll
}

func genderCollection() *Collection[*reference.Gender] {
	return referenceCollection(tableGenders,
		func(obj *reference.Gender) int64 { return obj.ID },
		func(obj *reference.Gender) string { return obj.Name })
}

func statusCollection() *Collection[*reference.Status] {
	return referenceCollection(tableStatuses,
		func(obj *reference.Status) int64 { return obj.ID },
		func(obj *reference.Status) string { return obj.Name })
}

func cloneInt64(value *int64) *int64 {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}
