package api

import (
	"net/http"

	"github.com/skybi/rendezvous/internal/api/schema"
	"github.com/skybi/rendezvous/internal/api/validation"
	"github.com/skybi/rendezvous/internal/photo"
)

// EndpointGetPhoto handles the 'GET /v1/users/{userId}/photos/{id}' endpoint
func (service *Service) EndpointGetPhoto(writer http.ResponseWriter, request *http.Request) {
	ids, validationErrs := pathIDs(request, "userId", "id")
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	obj, err := service.photos.Get(request.Context(), ids[1])
	if err != nil {
		service.writeServiceError(writer, err)
		return
	}
	if obj.UserID != ids[0] {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
		return
	}
	service.writer.WriteJSON(writer, obj)
}

type endpointAddPhotoRequestPayload struct {
	URL         *string `json:"url" required:"true" minLength:"1" maxLength:"2048"`
	PublicID    *string `json:"publicId" maxLength:"255"`
	Description *string `json:"description" maxLength:"500"`
}

// EndpointAddPhoto handles the 'POST /v1/users/{userId}/photos' endpoint.
// The photo has to be uploaded to the media host beforehand.
func (service *Service) EndpointAddPhoto(writer http.ResponseWriter, request *http.Request) {
	userID, validationErr := validation.PathID(request, "userId")
	if validationErr != nil {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErr)
		return
	}

	// Unmarshal and validate the request body
	payload, validationErrs, err := schema.UnmarshalBody[endpointAddPhotoRequestPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	obj := &photo.Photo{URL: *payload.URL}
	if payload.PublicID != nil {
		obj.PublicID = *payload.PublicID
	}
	if payload.Description != nil {
		obj.Description = *payload.Description
	}
	if err := service.photos.Add(request.Context(), callerID(request), userID, obj); err != nil {
		service.writeServiceError(writer, err)
		return
	}
	service.writer.WriteJSONCode(writer, http.StatusCreated, obj)
}

// EndpointSetMainPhoto handles the 'POST /v1/users/{userId}/photos/{id}/main' endpoint
func (service *Service) EndpointSetMainPhoto(writer http.ResponseWriter, request *http.Request) {
	ids, validationErrs := pathIDs(request, "userId", "id")
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	if err := service.photos.SetMain(request.Context(), callerID(request), ids[0], ids[1]); err != nil {
		service.writeServiceError(writer, err)
		return
	}
	writer.WriteHeader(http.StatusNoContent)
}

// EndpointDeletePhoto handles the 'DELETE /v1/users/{userId}/photos/{id}' endpoint
func (service *Service) EndpointDeletePhoto(writer http.ResponseWriter, request *http.Request) {
	ids, validationErrs := pathIDs(request, "userId", "id")
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	if err := service.photos.Delete(request.Context(), callerID(request), ids[0], ids[1]); err != nil {
		service.writeServiceError(writer, err)
		return
	}
	writer.WriteHeader(http.StatusNoContent)
}
