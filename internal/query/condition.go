package query

import (
	"errors"
	"fmt"
)

// ErrUnknownField is returned by storage adapters whenever a condition, ordering or include references a field they
// cannot map to their native representation
var ErrUnknownField = errors.New("unknown field")

// UnknownFieldError wraps ErrUnknownField with the name of the offending field
func UnknownFieldError(field Field) error {
	return fmt.Errorf("%w: %s", ErrUnknownField, field)
}

// Field represents the name of an entity field a condition or ordering refers to.
// Every entity package declares its own set of fields; storage adapters map them to columns or accessors.
type Field string

// Condition represents a node of a criteria expression tree.
// The tree is never evaluated by this package itself; storage adapters translate it into their native filter syntax.
type Condition interface {
	condition()
}

// Eq matches records whose field equals Value
type Eq struct {
	Field Field
	Value any
}

// NotEq matches records whose field does not equal Value
type NotEq struct {
	Field Field
	Value any
}

// Lt matches records whose field is less than Value
type Lt struct {
	Field Field
	Value any
}

// LtOrEq matches records whose field is less than or equal to Value
type LtOrEq struct {
	Field Field
	Value any
}

// Gt matches records whose field is greater than Value
type Gt struct {
	Field Field
	Value any
}

// GtOrEq matches records whose field is greater than or equal to Value
type GtOrEq struct {
	Field Field
	Value any
}

// IsNull matches records whose field holds no value
type IsNull struct {
	Field Field
}

// In matches records whose field equals one of Values.
// An empty value list matches nothing.
type In struct {
	Field  Field
	Values []any
}

// ContainsFold matches records whose string field contains Substring, ignoring case
type ContainsFold struct {
	Field     Field
	Substring string
}

// And matches records satisfying every operand. An empty And matches everything.
type And []Condition

// Or matches records satisfying at least one operand. An empty Or matches nothing.
type Or []Condition

// Not inverts the wrapped condition
type Not struct {
	Condition Condition
}

func (Eq) condition()           {}
func (NotEq) condition()        {}
func (Lt) condition()           {}
func (LtOrEq) condition()       {}
func (Gt) condition()           {}
func (GtOrEq) condition()       {}
func (IsNull) condition()       {}
func (In) condition()           {}
func (ContainsFold) condition() {}
func (And) condition()          {}
func (Or) condition()           {}
func (Not) condition()          {}

// All combines the given conditions using And, dropping nil operands.
// A single remaining operand is returned as is; nil is returned (match all) if no operand remains.
func All(conditions ...Condition) Condition {
	operands := make(And, 0, len(conditions))
	for _, cond := range conditions {
		if cond != nil {
			operands = append(operands, cond)
		}
	}
	switch len(operands) {
	case 0:
		return nil
	case 1:
		return operands[0]
	default:
		return operands
	}
}

// InInt64 builds an In condition out of a typed identifier list
func InInt64(field Field, ids []int64) In {
	values := make([]any, len(ids))
	for i, id := range ids {
		values[i] = id
	}
	return In{Field: field, Values: values}
}
