package api

import (
	"math"
	"net/http"
	"time"

	"github.com/skybi/rendezvous/internal/api/schema"
	"github.com/skybi/rendezvous/internal/api/validation"
	"github.com/skybi/rendezvous/internal/query"
	"github.com/skybi/rendezvous/internal/user"
)

// userResponse represents a user together with the values derived from it
type userResponse struct {
	*user.User
	Age      int    `json:"age"`
	PhotoURL string `json:"photoUrl"`
}

func newUserResponse(obj *user.User, now time.Time) *userResponse {
	return &userResponse{
		User:     obj,
		Age:      obj.Age(now),
		PhotoURL: obj.MainPhotoURL(),
	}
}

// EndpointSearchUsers handles the
// 'GET /v1/users?pageIndex={number?:1}&pageSize={number?:6}&search&sort&genderId&minAge&maxAge&likers&likees' endpoint
func (service *Service) EndpointSearchUsers(writer http.ResponseWriter, request *http.Request) {
	var validationErrs []*schema.Error
	collect := func(err *schema.Error) {
		if err != nil {
			validationErrs = append(validationErrs, err)
		}
	}

	params := user.DefaultSearchParams()
	pageParams, errs := pageParamsFromQuery(request)
	validationErrs = append(validationErrs, errs...)
	params.PageParams = pageParams

	minAge, err := validation.QueryNumber(request, "minAge", false, user.DefaultMinAge, 0, 150)
	collect(err)
	maxAge, err := validation.QueryNumber(request, "maxAge", false, user.DefaultMaxAge, 0, 150)
	collect(err)
	params.MinAge, params.MaxAge = int(minAge), int(maxAge)

	params.GenderID, err = validation.OptionalQueryNumber(request, "genderId", 1, math.MaxInt64)
	collect(err)
	params.Likers, err = validation.QueryBool(request, "likers", false)
	collect(err)
	params.Likees, err = validation.QueryBool(request, "likees", false)
	collect(err)

	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	values := request.URL.Query()
	params.Search = values.Get("search")
	params.Sort = values.Get("sort")

	page, searchErr := service.users.Search(request.Context(), callerID(request), params)
	if searchErr != nil {
		service.writeServiceError(writer, searchErr)
		return
	}

	now := time.Now().UTC()
	writePage(service.writer, writer, query.Map(page, func(obj *user.User) *userResponse {
		return newUserResponse(obj, now)
	}))
}

// EndpointGetUser handles the 'GET /v1/users/{userId}' endpoint
func (service *Service) EndpointGetUser(writer http.ResponseWriter, request *http.Request) {
	id, validationErr := validation.PathID(request, "userId")
	if validationErr != nil {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErr)
		return
	}

	obj, err := service.users.GetByID(request.Context(), id)
	if err != nil {
		service.writeServiceError(writer, err)
		return
	}
	service.writer.WriteJSON(writer, newUserResponse(obj, time.Now().UTC()))
}

type endpointUpdateUserRequestPayload struct {
	Name      *string `json:"name" minLength:"1" maxLength:"100"`
	Surname   *string `json:"surname" maxLength:"100"`
	Interests *string `json:"interests" maxLength:"2000"`
	GenderID  *int64  `json:"genderId" min:"1"`
	StatusID  *int64  `json:"statusId" min:"1"`
	CityID    *int64  `json:"cityId" min:"1"`
	RegionID  *int64  `json:"regionId" min:"1"`
}

// EndpointUpdateUser handles the 'PUT /v1/users/{userId}' endpoint
func (service *Service) EndpointUpdateUser(writer http.ResponseWriter, request *http.Request) {
	id, validationErr := validation.PathID(request, "userId")
	if validationErr != nil {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErr)
		return
	}

	// Unmarshal and validate the request body
	payload, validationErrs, err := schema.UnmarshalBody[endpointUpdateUserRequestPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	// Update the user and return the new one
	obj, err := service.users.Update(request.Context(), callerID(request), id, &user.Update{
		Name:      payload.Name,
		Surname:   payload.Surname,
		Interests: payload.Interests,
		GenderID:  payload.GenderID,
		StatusID:  payload.StatusID,
		CityID:    payload.CityID,
		RegionID:  payload.RegionID,
	})
	if err != nil {
		service.writeServiceError(writer, err)
		return
	}
	service.writer.WriteJSON(writer, newUserResponse(obj, time.Now().UTC()))
}

// EndpointLikeUser handles the 'POST /v1/users/{userId}/like/{recipientId}' endpoint
func (service *Service) EndpointLikeUser(writer http.ResponseWriter, request *http.Request) {
	ids, validationErrs := pathIDs(request, "userId", "recipientId")
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	if err := service.users.Like(request.Context(), callerID(request), ids[0], ids[1]); err != nil {
		service.writeServiceError(writer, err)
		return
	}
	writer.WriteHeader(http.StatusNoContent)
}

// pageParamsFromQuery extracts the paging parameters every paged listing accepts.
// Page sizes above the maximum are clamped instead of rejected.
func pageParamsFromQuery(request *http.Request) (query.PageParams, []*schema.Error) {
	var errs []*schema.Error
	params := query.DefaultPageParams()

	index, err := validation.QueryNumber(request, "pageIndex", false, 1, 1, math.MaxInt32)
	if err != nil {
		errs = append(errs, err)
	}
	size, err := validation.QueryNumber(request, "pageSize", false, query.DefaultPageSize, 1, math.MaxInt32)
	if err != nil {
		errs = append(errs, err)
	}

	params.PageIndex = int(index)
	params.SetPageSize(int(size))
	return params, errs
}

// pathIDs extracts several IDs out of the URL parameters of the given request
func pathIDs(request *http.Request, keys ...string) ([]int64, []*schema.Error) {
	ids := make([]int64, len(keys))
	var errs []*schema.Error
	for i, key := range keys {
		id, err := validation.PathID(request, key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		ids[i] = id
	}
	return ids, errs
}

// writePage writes the items of a page and describes the page in the 'Pagination' header
func writePage[T any](schemaWriter *schema.Writer, writer http.ResponseWriter, page *query.Page[T]) {
	schemaWriter.WritePagination(writer, page.Metadata)
	schemaWriter.WriteJSON(writer, page.Items)
}
