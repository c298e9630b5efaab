package schema

import "encoding/json"

var (
	ErrInternal = &Error{
		Type:    "generic.internal",
		Message: "An internal error occurred.",
	}
	ErrNotFound = &Error{
		Type:    "generic.notFound",
		Message: "Resource not found.",
	}
	ErrMethodNotAllowed = &Error{
		Type:    "generic.methodNotAllowed",
		Message: "Method not allowed.",
	}
	ErrUnauthorized = &Error{
		Type:    "access.unauthorized",
		Message: "Unauthorized",
	}
)

// ErrorResponse represents the response structure sent by the API whenever errors occurred
type ErrorResponse struct {
	Status int      `json:"status"`
	Errors []*Error `json:"errors"`
}

// Error represents a single error present in the ErrorResponse
type Error struct {
	Type    string         `json:"type"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

// MarshalJSON makes sure errors without details render an empty details object
func (err Error) MarshalJSON() ([]byte, error) {
	type plain Error
	if err.Details == nil {
		err.Details = map[string]any{}
	}
	return json.Marshal(plain(err))
}
