package user

import (
	"strings"
	"time"

	"github.com/skybi/rendezvous/internal/query"
)

const (
	DefaultMinAge = 18
	DefaultMaxAge = 99
)

const (
	SortCreated = "created"
	SortSurname = "surname"
)

// SearchParams represents the parameters of a user search
type SearchParams struct {
	query.PageParams

	// UserID is the ID of the requesting user who is excluded from the results
	UserID   *int64
	GenderID *int64
	MinAge   int
	MaxAge   int
	Sort     string
	Search   string

	// Likers restricts the results to users who liked the requesting user
	Likers bool

	// Likees restricts the results to users the requesting user liked.
	// Likers takes precedence if both are set.
	Likees bool
}

// DefaultSearchParams returns the search parameters used if a caller requests nothing specific
func DefaultSearchParams() SearchParams {
	return SearchParams{
		PageParams: query.DefaultPageParams(),
		MinAge:     DefaultMinAge,
		MaxAge:     DefaultMaxAge,
	}
}

// Normalize normalizes the paging parameters and replaces unset age bounds by their defaults
func (params *SearchParams) Normalize() {
	params.PageParams.Normalize()
	if params.MinAge <= 0 {
		params.MinAge = DefaultMinAge
	}
	if params.MaxAge <= 0 {
		params.MaxAge = DefaultMaxAge
	}
}

// Filter holds everything the user search criteria depend on
type Filter struct {
	SearchParams

	// Now is the point in time ages are calculated at
	Now time.Time

	// LikedIDs holds the IDs the results are restricted to if the likers or likees flag is set
	LikedIDs []int64
}

// LikeFilterActive reports whether the results are restricted to liked or liking users
func (filter *Filter) LikeFilterActive() bool {
	return filter.Likers || filter.Likees
}

// NewSearchSpecification creates the specification of a single page of user search results
func NewSearchSpecification(filter *Filter) *query.Specification[*User] {
	builder := query.NewBuilder[*User](criteria(filter)).
		Include(IncludePhotos).
		OrderBy(FieldName)

	if filter.LikeFilterActive() {
		builder.Include(IncludeLikers, IncludeLikees)
	}

	switch strings.TrimSpace(filter.Sort) {
	case "":
	case SortCreated:
		builder.OrderByDescending(FieldCreated)
	case SortSurname:
		builder.OrderBy(FieldSurname)
	default:
		builder.OrderByDescending(FieldLastActive)
	}

	return builder.Page(filter.Window()).Build()
}

// NewCountSpecification creates the specification counting every user search result.
// It shares its criteria with NewSearchSpecification but omits includes, ordering and paging.
func NewCountSpecification(filter *Filter) *query.Specification[*User] {
	return query.NewBuilder[*User](criteria(filter)).Build()
}

// NewByIDSpecification matches the user with the given ID including their photos and reference data
func NewByIDSpecification(id int64) *query.Specification[*User] {
	return query.NewBuilder[*User](query.Eq{Field: FieldID, Value: id}).
		Include(IncludePhotos, IncludeGender, IncludeStatus, IncludeRegion, IncludeCity).
		Build()
}

// criteria builds the search criteria shared by the list and count specifications
func criteria(filter *Filter) query.Condition {
	var conditions []query.Condition

	if search := strings.TrimSpace(filter.Search); search != "" {
		conditions = append(conditions, query.ContainsFold{Field: FieldName, Substring: search})
	}

	if filter.UserID != nil {
		conditions = append(conditions, query.NotEq{Field: FieldID, Value: *filter.UserID})
	}

	if filter.GenderID != nil {
		conditions = append(conditions, query.Eq{Field: FieldGenderID, Value: *filter.GenderID})
	}

	if filter.MinAge != DefaultMinAge || filter.MaxAge != DefaultMaxAge {
		today := time.Date(filter.Now.Year(), filter.Now.Month(), filter.Now.Day(), 0, 0, 0, 0, time.UTC)
		// Whole days: born on or after the day after turning maxAge+1, and before the day after turning minAge
		oldestBirthDay := today.AddDate(-filter.MaxAge-1, 0, 1)
		youngestBirthDayEnd := today.AddDate(-filter.MinAge, 0, 1)
		conditions = append(conditions,
			query.GtOrEq{Field: FieldDateOfBirth, Value: oldestBirthDay},
			query.Lt{Field: FieldDateOfBirth, Value: youngestBirthDayEnd},
		)
	}

	if filter.LikeFilterActive() {
		conditions = append(conditions, query.InInt64(FieldID, filter.LikedIDs))
	}

	return query.All(conditions...)
}

// NewByIDsSpecification matches the users with one of the given IDs without loading any relation
func NewByIDsSpecification(ids []int64) *query.Specification[*User] {
	return query.NewBuilder[*User](query.InInt64(FieldID, ids)).Build()
}
