package postgres

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/skybi/rendezvous/internal/query"
)

var (
	sqlTrue  = squirrel.Expr("TRUE")
	sqlFalse = squirrel.Expr("FALSE")
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// compile translates a condition into a squirrel expression using the given field to column mapping
func compile(cond query.Condition, columns map[query.Field]string) (squirrel.Sqlizer, error) {
	column := func(field query.Field) (string, error) {
		col, ok := columns[field]
		if !ok {
			return "", query.UnknownFieldError(field)
		}
		return col, nil
	}

	switch c := cond.(type) {
	case query.Eq:
		col, err := column(c.Field)
		if err != nil {
			return nil, err
		}
		return squirrel.Eq{col: c.Value}, nil
	case query.NotEq:
		col, err := column(c.Field)
		if err != nil {
			return nil, err
		}
		return squirrel.NotEq{col: c.Value}, nil
	case query.Lt:
		col, err := column(c.Field)
		if err != nil {
			return nil, err
		}
		return squirrel.Lt{col: c.Value}, nil
	case query.LtOrEq:
		col, err := column(c.Field)
		if err != nil {
			return nil, err
		}
		return squirrel.LtOrEq{col: c.Value}, nil
	case query.Gt:
		col, err := column(c.Field)
		if err != nil {
			return nil, err
		}
		return squirrel.Gt{col: c.Value}, nil
	case query.GtOrEq:
		col, err := column(c.Field)
		if err != nil {
			return nil, err
		}
		return squirrel.GtOrEq{col: c.Value}, nil
	case query.IsNull:
		col, err := column(c.Field)
		if err != nil {
			return nil, err
		}
		return squirrel.Eq{col: nil}, nil
	case query.In:
		col, err := column(c.Field)
		if err != nil {
			return nil, err
		}
		if len(c.Values) == 0 {
			return sqlFalse, nil
		}
		return squirrel.Eq{col: c.Values}, nil
	case query.ContainsFold:
		col, err := column(c.Field)
		if err != nil {
			return nil, err
		}
		return squirrel.ILike{col: "%" + likeEscaper.Replace(c.Substring) + "%"}, nil
	case query.And:
		if len(c) == 0 {
			return sqlTrue, nil
		}
		operands, err := compileAll(c, columns)
		if err != nil {
			return nil, err
		}
		return squirrel.And(operands), nil
	case query.Or:
		if len(c) == 0 {
			return sqlFalse, nil
		}
		operands, err := compileAll(c, columns)
		if err != nil {
			return nil, err
		}
		return squirrel.Or(operands), nil
	case query.Not:
		inner, err := compile(c.Condition, columns)
		if err != nil {
			return nil, err
		}
		sql, args, err := inner.ToSql()
		if err != nil {
			return nil, err
		}
		return squirrel.Expr("NOT ("+sql+")", args...), nil
	}
	return nil, fmt.Errorf("unsupported condition %T", cond)
}

func compileAll(conds []query.Condition, columns map[query.Field]string) ([]squirrel.Sqlizer, error) {
	operands := make([]squirrel.Sqlizer, len(conds))
	for i, cond := range conds {
		compiled, err := compile(cond, columns)
		if err != nil {
			return nil, err
		}
		operands[i] = compiled
	}
	return operands, nil
}
