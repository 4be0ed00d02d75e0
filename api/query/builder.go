// Package query builds parameterized warehouse SQL from filter parameters.
//
// Every statement is assembled from a typed predicate list and rendered
// through squirrel, so user-supplied values only ever travel as bound
// arguments. Table and column identifiers come from configuration and are
// never user input.
package query

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// Op is a SQL comparison operator used in a predicate.
type Op string

const (
	OpEq  Op = "="
	OpGte Op = ">="
	OpLte Op = "<="
)

// Predicate is one WHERE conjunct: a column (or trusted SQL expression),
// an operator, and a single bound argument. Placeholder defaults to "?"
// and may wrap the argument in a server-side cast such as "toDate(?)".
type Predicate struct {
	Column      string
	Op          Op
	Placeholder string
	Arg         any
}

func (p Predicate) expr() string {
	ph := p.Placeholder
	if ph == "" {
		ph = "?"
	}
	return p.Column + " " + string(p.Op) + " " + ph
}

// Query is a rendered SQL statement with its bound arguments in order.
type Query struct {
	SQL  string
	Args []any
}

// build renders a SELECT over table with the given predicates, ordering
// expression, and bound row limit. With no predicates the WHERE clause is
// omitted entirely. The limit is always the final bound argument, never
// interpolated into the SQL text.
func build(columns []string, table string, preds []Predicate, orderBy string, limit int) (Query, error) {
	b := sq.Select(columns...).From(table)
	for _, p := range preds {
		b = b.Where(sq.Expr(p.expr(), p.Arg))
	}
	b = b.OrderBy(orderBy).Suffix("LIMIT ?", limit)

	sqlText, args, err := b.ToSql()
	if err != nil {
		return Query{}, fmt.Errorf("render query: %w", err)
	}
	return Query{SQL: sqlText, Args: args}, nil
}

// Distinct returns the ordered non-null values query used to populate a
// single dropdown. Columns are looked up independently of one another.
func Distinct(table, column string) Query {
	return Query{
		SQL: fmt.Sprintf("SELECT DISTINCT %s FROM %s WHERE %s IS NOT NULL AND %s != '' ORDER BY %s",
			column, table, column, column, column),
	}
}
