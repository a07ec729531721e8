package querysql

import (
	"fmt"
	"strings"

	"github.com/roach88/taskman/internal/queryir"
)

// Compile converts a query to parameterized SQL for SQLite.
// Returns (sql, params, error).
//
// Values are always bound as ? parameters. Identifiers are validated by
// queryir.Validate before they are written into the statement. Every query
// ends its ORDER BY with "id ASC" so equal sort keys still come back in a
// stable order.
func Compile(q queryir.Query) (string, []any, error) {
	if err := queryir.Validate(q); err != nil {
		return "", nil, fmt.Errorf("invalid query: %w", err)
	}

	switch query := q.(type) {
	case queryir.Select:
		return compileSelect(query)
	case *queryir.Select:
		return compileSelect(*query)
	default:
		return "", nil, fmt.Errorf("unsupported query type: %T", q)
	}
}

func compileSelect(q queryir.Select) (string, []any, error) {
	columns := "*"
	if len(q.Columns) > 0 {
		columns = strings.Join(q.Columns, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s", columns, q.From)

	var params []any
	if q.Filter != nil {
		where, whereParams, err := compilePredicate(q.Filter)
		if err != nil {
			return "", nil, fmt.Errorf("compile filter: %w", err)
		}
		b.WriteString(" WHERE ")
		b.WriteString(where)
		params = whereParams
	}

	order, orderParams := compileOrder(q.Order)
	b.WriteString(" ORDER BY ")
	b.WriteString(order)
	params = append(params, orderParams...)

	return b.String(), params, nil
}

func compilePredicate(p queryir.Predicate) (string, []any, error) {
	switch pred := p.(type) {
	case queryir.Equals:
		return pred.Field + " = ?", []any{pred.Value}, nil
	case queryir.Contains:
		return compileContains(pred)
	case queryir.And:
		return compileAnd(pred)
	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}
}

// compileContains uses instr() rather than LIKE: LIKE folds ASCII case and
// treats % and _ in the term as wildcards.
func compileContains(c queryir.Contains) (string, []any, error) {
	parts := make([]string, len(c.Fields))
	params := make([]any, len(c.Fields))
	for i, field := range c.Fields {
		parts[i] = fmt.Sprintf("instr(%s, ?) > 0", field)
		params[i] = c.Term
	}
	if len(parts) == 1 {
		return parts[0], params, nil
	}
	return "(" + strings.Join(parts, " OR ") + ")", params, nil
}

func compileAnd(and queryir.And) (string, []any, error) {
	if len(and.Predicates) == 0 {
		return "1 = 1", nil, nil
	}

	var parts []string
	var params []any
	for _, pred := range and.Predicates {
		sql, predParams, err := compilePredicate(pred)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, sql)
		params = append(params, predParams...)
	}
	return strings.Join(parts, " AND "), params, nil
}

// compileOrder renders the ORDER BY keys. Ranking values are bound as
// parameters like any other value.
func compileOrder(terms []queryir.OrderTerm) (string, []any) {
	var keys []string
	var params []any

	for _, term := range terms {
		switch t := term.(type) {
		case queryir.Ranked:
			var b strings.Builder
			fmt.Fprintf(&b, "CASE %s", t.Field)
			for i, value := range t.Ranking {
				fmt.Fprintf(&b, " WHEN ? THEN %d", i+1)
				params = append(params, value)
			}
			fmt.Fprintf(&b, " ELSE %d END", len(t.Ranking)+1)
			keys = append(keys, b.String())
		case queryir.Ascending:
			// SQLite sorts NULL first; "IS NULL" puts NULL rows after the rest
			// on engines without NULLS LAST.
			if t.NullsLast {
				keys = append(keys, t.Field+" IS NULL")
			}
			keys = append(keys, t.Field+" ASC")
		}
	}

	keys = append(keys, "id ASC")
	return strings.Join(keys, ", "), params
}
