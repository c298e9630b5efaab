package user

import (
	"time"

	"github.com/skybi/rendezvous/internal/like"
	"github.com/skybi/rendezvous/internal/photo"
	"github.com/skybi/rendezvous/internal/query"
	"github.com/skybi/rendezvous/internal/reference"
)

const (
	FieldID          query.Field = "id"
	FieldName        query.Field = "name"
	FieldSurname     query.Field = "surname"
	FieldDateOfBirth query.Field = "dateOfBirth"
	FieldCreated     query.Field = "created"
	FieldLastActive  query.Field = "lastActive"
	FieldGenderID    query.Field = "genderId"
	FieldStatusID    query.Field = "statusId"
	FieldCityID      query.Field = "cityId"
	FieldRegionID    query.Field = "regionId"
)

const (
	IncludePhotos query.Include = "photos"
	IncludeLikers query.Include = "likers"
	IncludeLikees query.Include = "likees"
	IncludeGender query.Include = "gender"
	IncludeStatus query.Include = "status"
	IncludeCity   query.Include = "city"
	IncludeRegion query.Include = "region"
)

// User represents a user registered to the service
type User struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Surname     string    `json:"surname"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Created     time.Time `json:"created"`
	LastActive  time.Time `json:"lastActive"`
	Interests   string    `json:"interests"`

	GenderID *int64 `json:"genderId,omitempty"`
	StatusID *int64 `json:"statusId,omitempty"`
	CityID   *int64 `json:"cityId,omitempty"`
	RegionID *int64 `json:"regionId,omitempty"`

	// The following relations are only populated if they were included explicitly
	Gender *reference.Gender `json:"gender,omitempty"`
	Status *reference.Status `json:"status,omitempty"`
	City   *reference.City   `json:"city,omitempty"`
	Region *reference.Region `json:"region,omitempty"`
	Photos []*photo.Photo    `json:"photos,omitempty"`
	Likers []*like.Like      `json:"-"`
	Likees []*like.Like      `json:"-"`
}

// Age calculates the age of the user at the given point in time
func (obj *User) Age(now time.Time) int {
	age := now.Year() - obj.DateOfBirth.Year()
	if now.Month() < obj.DateOfBirth.Month() || (now.Month() == obj.DateOfBirth.Month() && now.Day() < obj.DateOfBirth.Day()) {
		age--
	}
	return age
}

// MainPhotoURL returns the URL of the user's main photo if photos were included
func (obj *User) MainPhotoURL() string {
	for _, p := range obj.Photos {
		if p.IsMain {
			return p.URL
		}
	}
	return ""
}
