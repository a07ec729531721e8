package queryir

import (
	"errors"
	"fmt"
	"regexp"
)

// identPattern matches the identifiers that may be interpolated into SQL.
// Values are never interpolated; only table and column names are.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdent reports whether name may be used as a table or column name.
func ValidIdent(name string) bool {
	return identPattern.MatchString(name)
}

// Validate checks that every identifier in q is safe and every node is
// well formed. All problems are reported together.
func Validate(q Query) error {
	v := &validator{}
	v.validateQuery(q)
	return errors.Join(v.errs...)
}

type validator struct {
	errs []error
}

func (v *validator) addError(format string, args ...any) {
	v.errs = append(v.errs, fmt.Errorf(format, args...))
}

func (v *validator) validateQuery(q Query) {
	switch query := q.(type) {
	case Select:
		v.validateSelect(query)
	case *Select:
		if query == nil {
			v.addError("nil query")
			return
		}
		v.validateSelect(*query)
	case nil:
		v.addError("nil query")
	default:
		v.addError("unsupported query type %T", q)
	}
}

func (v *validator) validateSelect(s Select) {
	if !ValidIdent(s.From) {
		v.addError("invalid table name %q", s.From)
	}
	for _, col := range s.Columns {
		v.checkField("column", col)
	}
	if s.Filter != nil {
		v.validatePredicate(s.Filter)
	}
	for _, term := range s.Order {
		v.validateOrder(term)
	}
}

func (v *validator) validatePredicate(p Predicate) {
	switch pred := p.(type) {
	case Equals:
		v.checkField("equals field", pred.Field)
	case Contains:
		if len(pred.Fields) == 0 {
			v.addError("contains predicate needs at least one field")
		}
		for _, f := range pred.Fields {
			v.checkField("contains field", f)
		}
	case And:
		for _, inner := range pred.Predicates {
			v.validatePredicate(inner)
		}
	default:
		v.addError("unsupported predicate type %T", p)
	}
}

func (v *validator) validateOrder(o OrderTerm) {
	switch term := o.(type) {
	case Ranked:
		v.checkField("ranked field", term.Field)
		if len(term.Ranking) == 0 {
			v.addError("ranked order on %q needs a non-empty ranking", term.Field)
		}
	case Ascending:
		v.checkField("order field", term.Field)
	default:
		v.addError("unsupported order term %T", o)
	}
}

func (v *validator) checkField(kind, name string) {
	if !ValidIdent(name) {
		v.addError("invalid %s %q", kind, name)
	}
}
