package model

import (
	"maps"
	"sort"
	"strings"
)

const (
	FieldID        = "id"
	FieldGroup     = "group"
	FieldCreatedAt = "createdAt"

	// FieldName is the nested group field matched by a group-name filter.
	FieldName = "name"
)

// Relation names a related record the repository should load alongside users.
type Relation string

const RelationGroup Relation = "group"

// QueryCriteria maps a field name to the single predicate applied to it.
// An empty value matches every record.
type QueryCriteria struct {
	predicates map[string]Predicate
}

func NewQueryCriteria() QueryCriteria {
	return QueryCriteria{predicates: make(map[string]Predicate)}
}

// Compile translates a filter into repository criteria. Absent fields are
// omitted rather than compared to null.
func Compile(spec FilterSpec) QueryCriteria {
	criteria := NewQueryCriteria()

	if id := spec.ID(); id != "" {
		criteria.predicates[FieldID] = Equals(id)
	}

	if name := spec.GroupName(); name != "" {
		criteria.predicates[FieldGroup] = Equals(Fields{FieldName: name})
	}

	if createdAt, ok := spec.CreatedAt(); ok {
		if predicate, ok := CompileDateRange(createdAt); ok {
			criteria.predicates[FieldCreatedAt] = predicate
		}
	}

	return criteria
}

// CompileDateRange returns false when neither bound is set. A range with both
// bounds always compiles to Between.
func CompileDateRange(r DateRange) (Predicate, bool) {
	from, hasFrom := r.From()
	to, hasTo := r.To()

	if hasFrom && hasTo {
		return Between(from, to), true
	} else if hasFrom {
		return GreaterThan(from), true
	} else if hasTo {
		return LessThan(to), true
	}

	return Predicate{}, false
}

func (c QueryCriteria) Get(field string) (Predicate, bool) {
	p, ok := c.predicates[field]

	return p, ok
}

func (c QueryCriteria) Has(field string) bool {
	_, ok := c.predicates[field]

	return ok
}

func (c QueryCriteria) Len() int      { return len(c.predicates) }
func (c QueryCriteria) IsEmpty() bool { return len(c.predicates) == 0 }

// Fields returns the criteria field names in sorted order.
func (c QueryCriteria) Fields() []string {
	fields := make([]string, 0, len(c.predicates))
	for field := range c.predicates {
		fields = append(fields, field)
	}

	sort.Strings(fields)

	return fields
}

// Merge returns a new criteria holding both sets of predicates. Fields present
// in other replace those in c.
func (c QueryCriteria) Merge(other QueryCriteria) QueryCriteria {
	merged := NewQueryCriteria()
	maps.Copy(merged.predicates, c.predicates)
	maps.Copy(merged.predicates, other.predicates)

	return merged
}

// With returns a copy of c with predicate set on field.
func (c QueryCriteria) With(field string, predicate Predicate) QueryCriteria {
	updated := NewQueryCriteria()
	maps.Copy(updated.predicates, c.predicates)
	updated.predicates[field] = predicate

	return updated
}

// String renders the criteria deterministically, fields sorted by name.
func (c QueryCriteria) String() string {
	parts := make([]string, 0, len(c.predicates))
	for _, field := range c.Fields() {
		parts = append(parts, field+c.predicates[field].String())
	}

	return strings.Join(parts, ";")
}
