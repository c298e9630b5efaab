package validation

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/skybi/rendezvous/internal/api/schema"
)

var (
	errQueryParameterMissing = func(name string) *schema.Error {
		return &schema.Error{
			Type:    "validation.query.parameter.missing",
			Message: fmt.Sprintf("The query parameter '%s' is required but was not present in the request.", name),
			Details: map[string]any{
				"parameter": name,
			},
		}
	}
	errQueryParameterInvalidType = func(name, value, expectedType string) *schema.Error {
		return &schema.Error{
			Type:    "validation.query.parameter.invalidType",
			Message: fmt.Sprintf("The query parameter '%s' ('%s') could not be assigned to the required type (%s).", name, value, expectedType),
			Details: map[string]any{
				"parameter":     name,
				"value":         value,
				"expected_type": expectedType,
			},
		}
	}
	errQueryParameterNumberOutOfRange = func(name string, value, min, max int64) *schema.Error {
		comparison := ""
		if value < min {
			comparison = fmt.Sprintf("%d [given] < %d [min]", value, min)
		} else if value > max {
			comparison = fmt.Sprintf("%d [given] > %d [max]", value, max)
		}

		return &schema.Error{
			Type:    "validation.query.parameter.number.outOfRange",
			Message: fmt.Sprintf("The query parameter '%s' is out of the required range (%s).", name, comparison),
			Details: map[string]any{
				"parameter": name,
				"value":     value,
				"min":       min,
				"max":       max,
			},
		}
	}
	errPathParameterInvalidID = func(name, value string) *schema.Error {
		return &schema.Error{
			Type:    "validation.path.parameter.invalidID",
			Message: fmt.Sprintf("The path parameter '%s' ('%s') is not a valid ID.", name, value),
			Details: map[string]any{
				"parameter": name,
				"value":     value,
			},
		}
	}
)

// QueryNumber extracts and validates an integer value out of the query parameters of the given request
func QueryNumber(request *http.Request, key string, required bool, def, min, max int64) (int64, *schema.Error) {
	// Extract the raw string value
	value := request.URL.Query().Get(key)
	if value == "" {
		if required {
			return 0, errQueryParameterMissing(key)
		}
		return def, nil
	}

	// Try to parse the value
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errQueryParameterInvalidType(key, value, "number")
	}

	// Check if the parsed value is in the required range
	if parsed < min || parsed > max {
		return 0, errQueryParameterNumberOutOfRange(key, parsed, min, max)
	}

	return parsed, nil
}

// OptionalQueryNumber extracts and validates an integer value out of the query parameters of the given request.
// It returns nil if the parameter is not present.
func OptionalQueryNumber(request *http.Request, key string, min, max int64) (*int64, *schema.Error) {
	if !request.URL.Query().Has(key) {
		return nil, nil
	}
	parsed, err := QueryNumber(request, key, true, 0, min, max)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// QueryBool extracts and validates a boolean value out of the query parameters of the given request
func QueryBool(request *http.Request, key string, def bool) (bool, *schema.Error) {
	value := request.URL.Query().Get(key)
	if value == "" {
		return def, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, errQueryParameterInvalidType(key, value, "boolean")
	}
	return parsed, nil
}

// PathID extracts a positive ID out of the URL parameters of the given request
func PathID(request *http.Request, key string) (int64, *schema.Error) {
	value := chi.URLParam(request, key)
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil || parsed < 1 {
		return 0, errPathParameterInvalidID(key, value)
	}
	return parsed, nil
}
