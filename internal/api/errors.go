package api

import (
	"errors"
	"net/http"

	"github.com/skybi/rendezvous/internal/api/schema"
	"github.com/skybi/rendezvous/internal/message"
	"github.com/skybi/rendezvous/internal/photo"
	"github.com/skybi/rendezvous/internal/user"
)

// domainError maps a sentinel error of a domain service to its API representation
type domainError struct {
	err    error
	status int
	schema *schema.Error
}

func badRequest(err error, typ, msg string) domainError {
	return domainError{
		err:    err,
		status: http.StatusBadRequest,
		schema: &schema.Error{Type: typ, Message: msg},
	}
}

var domainErrors = []domainError{
	{err: user.ErrNotFound, status: http.StatusNotFound, schema: schema.ErrNotFound},
	{err: message.ErrNotFound, status: http.StatusNotFound, schema: schema.ErrNotFound},
	{err: photo.ErrNotFound, status: http.StatusNotFound, schema: schema.ErrNotFound},
	{err: user.ErrUnauthorized, status: http.StatusUnauthorized, schema: schema.ErrUnauthorized},
	{err: message.ErrUnauthorized, status: http.StatusUnauthorized, schema: schema.ErrUnauthorized},
	{err: photo.ErrUnauthorized, status: http.StatusUnauthorized, schema: schema.ErrUnauthorized},
	badRequest(user.ErrAlreadyLiked, "user.alreadyLiked", "You already like this user."),
	badRequest(user.ErrSelfLike, "user.selfLike", "You cannot like yourself."),
	badRequest(message.ErrRecipientNotFound, "message.recipientNotFound", "Could not find the recipient."),
	badRequest(message.ErrEmptyContent, "message.emptyContent", "The message content must not be empty."),
	badRequest(photo.ErrAlreadyMain, "photo.alreadyMain", "This is already the main photo."),
	badRequest(photo.ErrDeleteMain, "photo.deleteMain", "You cannot delete your main photo."),
	badRequest(photo.ErrMissingURL, "photo.missingURL", "A hosted photo URL is required."),
}

// writeServiceError writes the API representation of an error returned by a domain service.
// Errors that are not known domain errors are treated as internal errors.
func (service *Service) writeServiceError(writer http.ResponseWriter, err error) {
	for _, known := range domainErrors {
		if errors.Is(err, known.err) {
			service.writer.WriteErrors(writer, known.status, known.schema)
			return
		}
	}
	service.writer.WriteInternalError(writer, err)
}
