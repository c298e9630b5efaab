package memory

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/skybi/rendezvous/internal/query"
)

// ErrIncomparable is returned if a condition compares values of incompatible types
var ErrIncomparable = errors.New("incomparable values")

// normalize converts a field or condition value into its canonical comparison form.
// Integers become int64, floats become float64 and pointers are dereferenced; nil values (including nil pointers)
// report false.
func normalize(value any) (any, bool) {
	if value == nil {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.String:
		return rv.String(), true
	case reflect.Bool:
		return rv.Bool(), true
	}
	return rv.Interface(), true
}

// compare compares two normalized values the way an ordering would
func compare(a, b any) (int, error) {
	switch x := a.(type) {
	case int64:
		switch y := b.(type) {
		case int64:
			return compareOrdered(x, y), nil
		case float64:
			return compareOrdered(float64(x), y), nil
		}
	case float64:
		switch y := b.(type) {
		case float64:
			return compareOrdered(x, y), nil
		case int64:
			return compareOrdered(x, float64(y)), nil
		}
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y), nil
		}
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0, nil
			case !x:
				return -1, nil
			default:
				return 1, nil
			}
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y), nil
		}
	}
	return 0, fmt.Errorf("%w: %T and %T", ErrIncomparable, a, b)
}

func compareOrdered[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareValues compares a raw field value with a raw condition value.
// ok is false if either of them is null; comparisons involving null never match.
func compareValues(field, value any) (int, bool, error) {
	a, ok := normalize(field)
	if !ok {
		return 0, false, nil
	}
	b, ok := normalize(value)
	if !ok {
		return 0, false, nil
	}
	res, err := compare(a, b)
	return res, err == nil, err
}

// truth is the three-valued outcome of a condition; unknown arises from null operands
type truth int8

const (
	unknown truth = iota
	isFalse
	isTrue
)

func truthOf(ok bool) truth {
	if ok {
		return isTrue
	}
	return isFalse
}

// match evaluates a condition against a single record.
// A record matches only if the condition is true; unknown counts as no match, also below a Not.
func match[T any](fields map[query.Field]func(T) any, cond query.Condition, record T) (bool, error) {
	res, err := evaluate(fields, cond, record)
	return res == isTrue, err
}

func evaluate[T any](fields map[query.Field]func(T) any, cond query.Condition, record T) (truth, error) {
	get := func(field query.Field) (any, error) {
		accessor, ok := fields[field]
		if !ok {
			return nil, query.UnknownFieldError(field)
		}
		return accessor(record), nil
	}

	compareWith := func(field query.Field, value any, accept func(int) bool) (truth, error) {
		raw, err := get(field)
		if err != nil {
			return unknown, err
		}
		res, ok, err := compareValues(raw, value)
		if err != nil || !ok {
			return unknown, err
		}
		return truthOf(accept(res)), nil
	}

	switch c := cond.(type) {
	case query.Eq:
		if _, ok := normalize(c.Value); !ok {
			return evaluate(fields, query.IsNull{Field: c.Field}, record)
		}
		return compareWith(c.Field, c.Value, func(res int) bool { return res == 0 })
	case query.NotEq:
		return compareWith(c.Field, c.Value, func(res int) bool { return res != 0 })
	case query.Lt:
		return compareWith(c.Field, c.Value, func(res int) bool { return res < 0 })
	case query.LtOrEq:
		return compareWith(c.Field, c.Value, func(res int) bool { return res <= 0 })
	case query.Gt:
		return compareWith(c.Field, c.Value, func(res int) bool { return res > 0 })
	case query.GtOrEq:
		return compareWith(c.Field, c.Value, func(res int) bool { return res >= 0 })
	case query.IsNull:
		raw, err := get(c.Field)
		if err != nil {
			return unknown, err
		}
		_, ok := normalize(raw)
		return truthOf(!ok), nil
	case query.In:
		res := isFalse
		for _, value := range c.Values {
			found, err := compareWith(c.Field, value, func(res int) bool { return res == 0 })
			if err != nil || found == isTrue {
				return found, err
			}
			if found == unknown {
				res = unknown
			}
		}
		return res, nil
	case query.ContainsFold:
		raw, err := get(c.Field)
		if err != nil {
			return unknown, err
		}
		value, ok := normalize(raw)
		if !ok {
			return unknown, nil
		}
		str, ok := value.(string)
		if !ok {
			return unknown, fmt.Errorf("%w: %T is not a string", ErrIncomparable, value)
		}
		return truthOf(strings.Contains(strings.ToLower(str), strings.ToLower(c.Substring))), nil
	case query.And:
		res := isTrue
		for _, operand := range c {
			operandRes, err := evaluate(fields, operand, record)
			if err != nil || operandRes == isFalse {
				return isFalse, err
			}
			if operandRes == unknown {
				res = unknown
			}
		}
		return res, nil
	case query.Or:
		res := isFalse
		for _, operand := range c {
			operandRes, err := evaluate(fields, operand, record)
			if err != nil || operandRes == isTrue {
				return operandRes, err
			}
			if operandRes == unknown {
				res = unknown
			}
		}
		return res, nil
	case query.Not:
		res, err := evaluate(fields, c.Condition, record)
		switch res {
		case isTrue:
			return isFalse, err
		case isFalse:
			return isTrue, err
		}
		return unknown, err
	}
	return unknown, fmt.Errorf("unsupported condition %T", cond)
}
