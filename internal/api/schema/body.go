package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// maxBodySize is the maximum amount of bytes read from a request body
const maxBodySize = 1 << 20

var (
	errRequestBodyInvalidJSON = func(err string) *Error {
		return &Error{
			Type:    "validation.requestBody.invalidJSON",
			Message: "Request body is not a valid JSON input.",
			Details: map[string]any{
				"error": err,
			},
		}
	}
	errRequestBodyParameterInvalidType = func(name, expectedType string) *Error {
		return &Error{
			Type:    "validation.requestBody.parameter.invalidType",
			Message: fmt.Sprintf("The request body parameter '%s' could not be assigned to the required type (%s).", name, expectedType),
			Details: map[string]any{
				"parameter":     name,
				"expected_type": expectedType,
			},
		}
	}
	errRequestBodyParameterMissing = func(name string) *Error {
		return &Error{
			Type:    "validation.requestBody.parameter.missing",
			Message: fmt.Sprintf("The request body parameter '%s' is required but was not present in the request.", name),
			Details: map[string]any{
				"parameter": name,
			},
		}
	}
	errRequestBodyParameterNumberOutOfRange = func(name string, value, min, max int64) *Error {
		return &Error{
			Type:    "validation.requestBody.parameter.number.outOfRange",
			Message: fmt.Sprintf("The request body parameter '%s' is out of the required range (%s).", name, describeRange(value, min, max)),
			Details: map[string]any{
				"parameter": name,
				"value":     value,
				"min":       min,
				"max":       max,
			},
		}
	}
	errRequestBodyParameterLengthOutOfRange = func(name string, length, min, max int64) *Error {
		return &Error{
			Type:    "validation.requestBody.parameter.string.lengthOutOfRange",
			Message: fmt.Sprintf("The length of the request body parameter '%s' is out of the required range (%s).", name, describeRange(length, min, max)),
			Details: map[string]any{
				"parameter": name,
				"length":    length,
				"min":       min,
				"max":       max,
			},
		}
	}
)

// UnmarshalBody parses and decodes a JSON request body and performs validations on it.
// Supported struct tags are 'required' for pointer fields, 'min'/'max' for integers and 'minLength'/'maxLength' for
// strings.
func UnmarshalBody[T any](request *http.Request) (*T, []*Error, error) {
	body, err := io.ReadAll(io.LimitReader(request.Body, maxBodySize))
	if err != nil {
		return nil, nil, err
	}

	target := new(T)
	if err := json.Unmarshal(body, target); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, []*Error{errRequestBodyParameterInvalidType(typeErr.Field, typeErr.Type.String())}, nil
		}
		return nil, []*Error{errRequestBodyInvalidJSON(err.Error())}, nil
	}

	errs, err := validateStruct("", target)
	if err != nil {
		return nil, nil, err
	}
	return target, errs, nil
}

func validateStruct(fieldPrefix string, val any) ([]*Error, error) {
	ref := reflect.ValueOf(val)
	if ref.Kind() == reflect.Pointer {
		ref = ref.Elem()
	}
	if ref.Kind() != reflect.Struct {
		return nil, errors.New("illegal call to validateStruct with non-struct parameter")
	}
	typ := ref.Type()

	var errs []*Error

	for i := 0; i < typ.NumField(); i++ {
		fieldDef := typ.Field(i)
		if !fieldDef.IsExported() {
			continue
		}
		fieldName := fieldPrefix + getFieldName(fieldDef)

		field := ref.Field(i)
		if field.Kind() == reflect.Pointer {
			if field.IsNil() {
				if strings.EqualFold(fieldDef.Tag.Get("required"), "true") {
					errs = append(errs, errRequestBodyParameterMissing(fieldName))
				}
				continue
			}
			field = field.Elem()
		}

		switch {
		case field.CanUint():
			min, max := tagRange(fieldDef, "min", "max")
			if val := int64(field.Uint()); val < min || val > max {
				errs = append(errs, errRequestBodyParameterNumberOutOfRange(fieldName, val, min, max))
			}
		case field.CanInt():
			min, max := tagRange(fieldDef, "min", "max")
			if val := field.Int(); val < min || val > max {
				errs = append(errs, errRequestBodyParameterNumberOutOfRange(fieldName, val, min, max))
			}
		case field.Kind() == reflect.String:
			min, max := tagRange(fieldDef, "minLength", "maxLength")
			if length := int64(utf8.RuneCountInString(strings.TrimSpace(field.String()))); length < min || length > max {
				errs = append(errs, errRequestBodyParameterLengthOutOfRange(fieldName, length, min, max))
			}
		case field.Kind() == reflect.Struct:
			subErrs, err := validateStruct(fieldName+".", field.Interface())
			if err != nil {
				return nil, err
			}
			errs = append(errs, subErrs...)
		}
	}

	return errs, nil
}

func tagRange(def reflect.StructField, minTag, maxTag string) (int64, int64) {
	min, err := strconv.ParseInt(def.Tag.Get(minTag), 10, 64)
	if err != nil {
		min = math.MinInt64
	}
	max, err := strconv.ParseInt(def.Tag.Get(maxTag), 10, 64)
	if err != nil {
		max = math.MaxInt64
	}
	return min, max
}

func describeRange(value, min, max int64) string {
	if value < min {
		return fmt.Sprintf("%d [given] < %d [min]", value, min)
	}
	if value > max {
		return fmt.Sprintf("%d [given] > %d [max]", value, max)
	}
	return ""
}

func getFieldName(def reflect.StructField) string {
	jsonVal, ok := def.Tag.Lookup("json")
	if !ok || jsonVal == "-" {
		return def.Name
	}
	name, _, _ := strings.Cut(jsonVal, ",")
	return name
}
