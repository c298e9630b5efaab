package schema

import (
	"encoding/json"
	"net/http"

	"github.com/skybi/rendezvous/internal/query"
)

// PaginationHeader is the response header carrying the pagination metadata of paged listings
const PaginationHeader = "Pagination"

// Writer helps writing unified API responses
type Writer struct {
	InternalErrorHook func(err error)
}

// WriteJSONCode writes the JSON representation of value to the given response writer using the given HTTP status code
func (writer *Writer) WriteJSONCode(rw http.ResponseWriter, code int, value any) {
	val, _ := json.Marshal(value)
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(code)
	rw.Write(val)
}

// WriteJSON writes the JSON representation of value to the given response writer.
// This method sends 200 OK as the HTTP status code; use WriteJSONCode to use a different one.
func (writer *Writer) WriteJSON(rw http.ResponseWriter, value any) {
	writer.WriteJSONCode(rw, http.StatusOK, value)
}

// WritePagination sets the 'Pagination' header describing the page that is about to be written
func (writer *Writer) WritePagination(rw http.ResponseWriter, meta query.Metadata) {
	val, _ := json.Marshal(meta.Header())
	rw.Header().Set(PaginationHeader, string(val))
}

// WriteErrors sends an error response
func (writer *Writer) WriteErrors(rw http.ResponseWriter, code int, errors ...*Error) {
	if errors == nil {
		errors = []*Error{}
	}
	response := &ErrorResponse{
		Status: code,
		Errors: errors,
	}
	writer.WriteJSONCode(rw, code, response)
}

// WriteInternalError processes an internal server error and writes it to the response
func (writer *Writer) WriteInternalError(rw http.ResponseWriter, err error) {
	if writer.InternalErrorHook != nil {
		writer.InternalErrorHook(err)
	}
	writer.WriteErrors(rw, http.StatusInternalServerError, ErrInternal)
}
