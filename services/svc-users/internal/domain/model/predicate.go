package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type PredicateOperator string

const (
	PredicateOpEq      PredicateOperator = "eq"
	PredicateOpGt      PredicateOperator = "gt"
	PredicateOpLt      PredicateOperator = "lt"
	PredicateOpBetween PredicateOperator = "between"
)

type (
	// Fields is the value of a nested-field equality, e.g. the group whose name is X.
	Fields map[string]any

	// Predicate is a single comparison applied to one criteria field.
	Predicate struct {
		operator PredicateOperator
		values   []any
	}
)

func Equals(value any) Predicate {
	return Predicate{operator: PredicateOpEq, values: []any{value}}
}

func GreaterThan(value any) Predicate {
	return Predicate{operator: PredicateOpGt, values: []any{value}}
}

func LessThan(value any) Predicate {
	return Predicate{operator: PredicateOpLt, values: []any{value}}
}

func Between(low, high any) Predicate {
	return Predicate{operator: PredicateOpBetween, values: []any{low, high}}
}

func (p Predicate) Operator() PredicateOperator { return p.operator }
func (p Predicate) IsZero() bool                { return p.operator == "" }

// Value returns the operand of a single-value predicate, or []any{low, high}
// for Between.
func (p Predicate) Value() any {
	switch len(p.values) {
	case 0:
		return nil
	case 1:
		return p.values[0]
	default:
		return append([]any(nil), p.values...)
	}
}

// Bounds returns the operands of a Between predicate.
func (p Predicate) Bounds() (low, high any, ok bool) {
	if p.operator != PredicateOpBetween || len(p.values) != 2 {
		return nil, nil, false
	}

	return p.values[0], p.values[1], true
}

// Nested returns the nested fields of an equality on a related record.
func (p Predicate) Nested() (Fields, bool) {
	if p.operator != PredicateOpEq || len(p.values) != 1 {
		return nil, false
	}

	fields, ok := p.values[0].(Fields)

	return fields, ok
}

func (p Predicate) String() string {
	switch p.operator {
	case PredicateOpEq:
		if nested, ok := p.Nested(); ok {
			return "=" + nested.String()
		}

		return "=" + formatOperand(p.values[0])
	case PredicateOpGt:
		return ">" + formatOperand(p.values[0])
	case PredicateOpLt:
		return "<" + formatOperand(p.values[0])
	case PredicateOpBetween:
		return fmt.Sprintf("[%s,%s]", formatOperand(p.values[0]), formatOperand(p.values[1]))
	default:
		return ""
	}
}

// Keys returns the nested field names in sorted order.
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for key := range f {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

func (f Fields) String() string {
	parts := make([]string, 0, len(f))
	for _, key := range f.Keys() {
		parts = append(parts, key+":"+formatOperand(f[key]))
	}

	return "{" + strings.Join(parts, ",") + "}"
}

func formatOperand(value any) string {
	switch v := value.(type) {
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
