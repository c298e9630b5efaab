package api

import (
	"net/http"

	"github.com/skybi/rendezvous/internal/api/schema"
	"github.com/skybi/rendezvous/internal/api/validation"
	"github.com/skybi/rendezvous/internal/message"
)

// EndpointGetMessages handles the
// 'GET /v1/users/{userId}/messages?container={string?:Unread}&pageIndex={number?:1}&pageSize={number?:6}' endpoint
func (service *Service) EndpointGetMessages(writer http.ResponseWriter, request *http.Request) {
	userID, validationErr := validation.PathID(request, "userId")
	if validationErr != nil {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErr)
		return
	}
	pageParams, validationErrs := pageParamsFromQuery(request)
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	page, err := service.messages.List(request.Context(), callerID(request), message.ListParams{
		PageParams: pageParams,
		UserID:     userID,
		Container:  request.URL.Query().Get("container"),
	})
	if err != nil {
		service.writeServiceError(writer, err)
		return
	}
	writePage(service.writer, writer, page)
}

// EndpointGetMessage handles the 'GET /v1/users/{userId}/messages/{id}' endpoint
func (service *Service) EndpointGetMessage(writer http.ResponseWriter, request *http.Request) {
	ids, validationErrs := pathIDs(request, "userId", "id")
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	obj, err := service.messages.GetByID(request.Context(), callerID(request), ids[0], ids[1])
	if err != nil {
		service.writeServiceError(writer, err)
		return
	}
	service.writer.WriteJSON(writer, obj)
}

type endpointCreateMessageRequestPayload struct {
	RecipientID *int64  `json:"recipientId" required:"true" min:"1"`
	Content     *string `json:"content" required:"true" minLength:"1" maxLength:"4000"`
}

// EndpointCreateMessage handles the 'POST /v1/users/{userId}/messages' endpoint
func (service *Service) EndpointCreateMessage(writer http.ResponseWriter, request *http.Request) {
	userID, validationErr := validation.PathID(request, "userId")
	if validationErr != nil {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErr)
		return
	}

	// Unmarshal and validate the request body
	payload, validationErrs, err := schema.UnmarshalBody[endpointCreateMessageRequestPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	obj, err := service.messages.Create(request.Context(), callerID(request), userID, *payload.RecipientID, *payload.Content)
	if err != nil {
		service.writeServiceError(writer, err)
		return
	}
	service.writer.WriteJSONCode(writer, http.StatusCreated, obj)
}

// EndpointGetMessageThread handles the 'GET /v1/users/{userId}/messages/thread/{recipientId}' endpoint
func (service *Service) EndpointGetMessageThread(writer http.ResponseWriter, request *http.Request) {
	ids, validationErrs := pathIDs(request, "userId", "recipientId")
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	messages, err := service.messages.Thread(request.Context(), callerID(request), ids[0], ids[1])
	if err != nil {
		service.writeServiceError(writer, err)
		return
	}
	if messages == nil {
		messages = []*message.Message{}
	}
	service.writer.WriteJSON(writer, messages)
}
