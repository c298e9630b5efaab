// Package relation implements the eager loading of entity relations shared by every storage driver.
// Every loader resolves a relation for a whole batch of records using a single In query against the related store.
package relation

import (
	"context"

	"github.com/skybi/rendezvous/internal/like"
	"github.com/skybi/rendezvous/internal/message"
	"github.com/skybi/rendezvous/internal/photo"
	"github.com/skybi/rendezvous/internal/query"
	"github.com/skybi/rendezvous/internal/reference"
	"github.com/skybi/rendezvous/internal/user"
)

// Sources holds the stores relations are loaded from
type Sources struct {
	Users     user.Store
	Photos    photo.Store
	Likes     like.Store
	Reference reference.Store
}

// UserLoaders returns the loaders of every relation of users
func UserLoaders(src *Sources) query.Loaders[*user.User] {
	return query.Loaders[*user.User]{
		user.IncludePhotos: src.loadPhotos,
		user.IncludeLikers: src.loadLikers,
		user.IncludeLikees: src.loadLikees,
		user.IncludeGender: func(ctx context.Context, users []*user.User) error {
			return loadReference(ctx, users, src.Reference.Genders(), func(obj *user.User) *int64 { return obj.GenderID },
				func(obj *reference.Gender) int64 { return obj.ID },
				func(obj *user.User, ref *reference.Gender) { obj.Gender = ref })
		},
		user.IncludeStatus: func(ctx context.Context, users []*user.User) error {
			return loadReference(ctx, users, src.Reference.Statuses(), func(obj *user.User) *int64 { return obj.StatusID },
				func(obj *reference.Status) int64 { return obj.ID },
				func(obj *user.User, ref *reference.Status) { obj.Status = ref })
		},
		user.IncludeCity: func(ctx context.Context, users []*user.User) error {
			return loadReference(ctx, users, src.Reference.Cities(), func(obj *user.User) *int64 { return obj.CityID },
				func(obj *reference.City) int64 { return obj.ID },
				func(obj *user.User, ref *reference.City) { obj.City = ref })
		},
		user.IncludeRegion: func(ctx context.Context, users []*user.User) error {
			return loadReference(ctx, users, src.Reference.Regions(), func(obj *user.User) *int64 { return obj.RegionID },
				func(obj *reference.Region) int64 { return obj.ID },
				func(obj *user.User, ref *reference.Region) { obj.Region = ref })
		},
	}
}

// MessageLoaders returns the loaders of every relation of messages.
// Loading the photos of a participant implies loading the participant itself.
func MessageLoaders(src *Sources) query.Loaders[*message.Message] {
	sender := participant{
		id:  func(obj *message.Message) int64 { return obj.SenderID },
		get: func(obj *message.Message) *user.User { return obj.Sender },
		set: func(obj *message.Message, u *user.User) { obj.Sender = u },
	}
	recipient := participant{
		id:  func(obj *message.Message) int64 { return obj.RecipientID },
		get: func(obj *message.Message) *user.User { return obj.Recipient },
		set: func(obj *message.Message, u *user.User) { obj.Recipient = u },
	}
	return query.Loaders[*message.Message]{
		message.IncludeSender: func(ctx context.Context, messages []*message.Message) error {
			return src.loadParticipants(ctx, messages, sender)
		},
		message.IncludeSenderPhotos: func(ctx context.Context, messages []*message.Message) error {
			return src.loadParticipantPhotos(ctx, messages, sender)
		},
		message.IncludeRecipient: func(ctx context.Context, messages []*message.Message) error {
			return src.loadParticipants(ctx, messages, recipient)
		},
		message.IncludeRecipientPhotos: func(ctx context.Context, messages []*message.Message) error {
			return src.loadParticipantPhotos(ctx, messages, recipient)
		},
	}
}

func (src *Sources) loadPhotos(ctx context.Context, users []*user.User) error {
	photos, err := query.Evaluate(src.Photos.Query(), photo.NewForUsersSpecification(userIDs(users))).List(ctx)
	if err != nil {
		return err
	}
	byUser := make(map[int64][]*photo.Photo, len(users))
	for _, obj := range photos {
		byUser[obj.UserID] = append(byUser[obj.UserID], obj)
	}
	for _, obj := range users {
		obj.Photos = byUser[obj.ID]
		if obj.Photos == nil {
			obj.Photos = []*photo.Photo{}
		}
	}
	return nil
}

func (src *Sources) loadLikers(ctx context.Context, users []*user.User) error {
	likes, err := query.Evaluate(src.Likes.Query(), like.NewLikersSpecification(userIDs(users)...)).List(ctx)
	if err != nil {
		return err
	}
	byUser := make(map[int64][]*like.Like, len(users))
	for _, obj := range likes {
		byUser[obj.LikeeID] = append(byUser[obj.LikeeID], obj)
	}
	for _, obj := range users {
		obj.Likers = byUser[obj.ID]
	}
	return nil
}

func (src *Sources) loadLikees(ctx context.Context, users []*user.User) error {
	likes, err := query.Evaluate(src.Likes.Query(), like.NewLikeesSpecification(userIDs(users)...)).List(ctx)
	if err != nil {
		return err
	}
	byUser := make(map[int64][]*like.Like, len(users))
	for _, obj := range likes {
		byUser[obj.LikerID] = append(byUser[obj.LikerID], obj)
	}
	for _, obj := range users {
		obj.Likees = byUser[obj.ID]
	}
	return nil
}

type participant struct {
	id  func(*message.Message) int64
	get func(*message.Message) *user.User
	set func(*message.Message, *user.User)
}

func (src *Sources) loadParticipants(ctx context.Context, messages []*message.Message, part participant) error {
	ids := make([]int64, 0, len(messages))
	seen := make(map[int64]struct{}, len(messages))
	for _, obj := range messages {
		id := part.id(obj)
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	users, err := query.Evaluate(src.Users.Query(), user.NewByIDsSpecification(ids)).List(ctx)
	if err != nil {
		return err
	}
	byID := make(map[int64]*user.User, len(users))
	for _, obj := range users {
		byID[obj.ID] = obj
	}
	for _, obj := range messages {
		part.set(obj, byID[part.id(obj)])
	}
	return nil
}

func (src *Sources) loadParticipantPhotos(ctx context.Context, messages []*message.Message, part participant) error {
	for _, obj := range messages {
		if part.get(obj) == nil {
			if err := src.loadParticipants(ctx, messages, part); err != nil {
				return err
			}
			break
		}
	}

	users := make([]*user.User, 0, len(messages))
	seen := make(map[*user.User]struct{}, len(messages))
	for _, obj := range messages {
		u := part.get(obj)
		if u == nil {
			continue
		}
		if _, ok := seen[u]; !ok {
			seen[u] = struct{}{}
			users = append(users, u)
		}
	}
	if len(users) == 0 {
		return nil
	}
	return src.loadPhotos(ctx, users)
}

func loadReference[T any](ctx context.Context, users []*user.User, base query.Queryable[*T], fk func(*user.User) *int64, key func(*T) int64, set func(*user.User, *T)) error {
	ids := make([]int64, 0, len(users))
	seen := make(map[int64]struct{}, len(users))
	for _, obj := range users {
		id := fk(obj)
		if id == nil {
			continue
		}
		if _, ok := seen[*id]; !ok {
			seen[*id] = struct{}{}
			ids = append(ids, *id)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	refs, err := query.Evaluate(base, reference.NewByIDsSpecification[*T](ids)).List(ctx)
	if err != nil {
		return err
	}
	byID := make(map[int64]*T, len(refs))
	for _, ref := range refs {
		byID[key(ref)] = ref
	}
	for _, obj := range users {
		if id := fk(obj); id != nil {
			set(obj, byID[*id])
		}
	}
	return nil
}

func userIDs(users []*user.User) []int64 {
	ids := make([]int64, len(users))
	for i, obj := range users {
		ids[i] = obj.ID
	}
	return ids
}
