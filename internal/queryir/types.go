package queryir

// Query is a compilable query. Select is the only implementation.
type Query interface {
	queryNode()
}

// Predicate is a filter condition.
type Predicate interface {
	predicateNode()
}

// OrderTerm is one key of an ORDER BY clause.
type OrderTerm interface {
	orderNode()
}

// Select reads rows from a table.
//
//	Select{
//	  From:   "tasks",
//	  Filter: And{Predicates: []Predicate{Equals{Field: "status", Value: "pending"}}},
//	  Order:  []OrderTerm{Ascending{Field: "deadline", NullsLast: true}},
//	}
//
// compiles to
//
//	SELECT * FROM tasks WHERE status = ? ORDER BY deadline IS NULL, deadline ASC, id ASC
type Select struct {
	From    string      // table name
	Columns []string    // nil selects every column
	Filter  Predicate   // nil matches every row
	Order   []OrderTerm // applied in sequence; id is always appended
}

func (Select) queryNode() {}

// Equals matches rows where Field equals Value.
type Equals struct {
	Field string
	Value any
}

func (Equals) predicateNode() {}

// Contains matches rows where Term occurs, case-sensitively, in at least one
// of Fields.
type Contains struct {
	Fields []string
	Term   string
}

func (Contains) predicateNode() {}

// And matches rows satisfying every predicate. An empty And matches all rows.
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}

// Ranked orders rows by the index of Field's value within Ranking.
// Values missing from Ranking sort after every ranked value.
type Ranked struct {
	Field   string
	Ranking []string
}

func (Ranked) orderNode() {}

// Ascending orders rows by Field ascending. With NullsLast, rows whose
// Field is NULL sort after every non-NULL row.
type Ascending struct {
	Field     string
	NullsLast bool
}

func (Ascending) orderNode() {}
