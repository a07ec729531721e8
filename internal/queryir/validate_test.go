package queryir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidSelect(t *testing.T) {
	q := Select{
		From: "tasks",
		Filter: And{Predicates: []Predicate{
			Equals{Field: "status", Value: "pending"},
			Contains{Fields: []string{"title", "description"}, Term: "x"},
		}},
		Order: []OrderTerm{
			Ranked{Field: "priority", Ranking: []string{"urgent", "high"}},
			Ascending{Field: "deadline", NullsLast: true},
		},
	}
	require.NoError(t, Validate(q))
	require.NoError(t, Validate(&q))
}

func TestValidate_NilQuery(t *testing.T) {
	err := Validate(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil query")

	var s *Select
	require.Error(t, Validate(s))
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	q := Select{
		From:    "tasks;",
		Columns: []string{"id", "bad col"},
		Filter: And{Predicates: []Predicate{
			Equals{Field: "1status", Value: "x"},
			Contains{Term: "x"},
		}},
		Order: []OrderTerm{
			Ranked{Field: "priority"},
		},
	}

	err := Validate(q)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, `invalid table name "tasks;"`)
	assert.Contains(t, msg, `invalid column "bad col"`)
	assert.Contains(t, msg, `invalid equals field "1status"`)
	assert.Contains(t, msg, "contains predicate needs at least one field")
	assert.Contains(t, msg, "needs a non-empty ranking")
}
