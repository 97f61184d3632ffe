package repos

import (
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/architeacher/users/pkg/logger"
	"github.com/architeacher/users/services/svc-users/internal/domain/model"
)

var ErrUnsupportedField = errors.New("unsupported criteria field")

var columnMapping = map[string]string{
	model.FieldID:        "u.id",
	model.FieldCreatedAt: "u.created_at",
}

// relationColumnMapping resolves nested equality on a related record.
var relationColumnMapping = map[string]map[string]string{
	model.FieldGroup: {
		model.FieldID:   "g.id",
		model.FieldName: "g.name",
	},
}

type CriteriaTranslator struct {
	logger *logger.Logger
}

func NewCriteriaTranslator(log *logger.Logger) *CriteriaTranslator {
	return &CriteriaTranslator{logger: log}
}

// ApplyConditionsOnly adds the criteria as a WHERE clause. Empty criteria
// leave the builder untouched.
func (t *CriteriaTranslator) ApplyConditionsOnly(builder sq.SelectBuilder, criteria model.QueryCriteria) (sq.SelectBuilder, error) {
	if criteria.IsEmpty() {
		return builder, nil
	}

	condition, err := t.Translate(criteria)
	if err != nil {
		return builder, err
	}

	return builder.Where(condition), nil
}

// Translate renders the criteria as one condition, fields in sorted order.
func (t *CriteriaTranslator) Translate(criteria model.QueryCriteria) (sq.Sqlizer, error) {
	conditions := make(sq.And, 0, criteria.Len())

	for _, field := range criteria.Fields() {
		predicate, _ := criteria.Get(field)

		condition, err := t.translatePredicate(field, predicate)
		if err != nil {
			return nil, err
		}

		conditions = append(conditions, condition)
	}

	if len(conditions) == 1 {
		return conditions[0], nil
	}

	return conditions, nil
}

// RequiresRelation reports whether the criteria filter on the given relation.
func (t *CriteriaTranslator) RequiresRelation(criteria model.QueryCriteria, relation model.Relation) bool {
	return criteria.Has(string(relation))
}

func (t *CriteriaTranslator) translatePredicate(field string, predicate model.Predicate) (sq.Sqlizer, error) {
	if nested, ok := predicate.Nested(); ok {
		return t.translateNested(field, nested)
	}

	col, err := t.col(field)
	if err != nil {
		return nil, err
	}

	switch predicate.Operator() {
	case model.PredicateOpEq:
		return sq.Eq{col: predicate.Value()}, nil

	case model.PredicateOpGt:
		return sq.Gt{col: predicate.Value()}, nil

	case model.PredicateOpLt:
		return sq.Lt{col: predicate.Value()}, nil

	case model.PredicateOpBetween:
		low, high, _ := predicate.Bounds()

		return sq.Expr(col+" BETWEEN ? AND ?", low, high), nil
	}

	return nil, fmt.Errorf("%w: %s has unsupported operator %q", ErrUnsupportedField, field, predicate.Operator())
}

func (t *CriteriaTranslator) translateNested(field string, nested model.Fields) (sq.Sqlizer, error) {
	columns, ok := relationColumnMapping[field]
	if !ok {
		return nil, t.unsupported(field)
	}

	conditions := make(sq.And, 0, len(nested))

	for _, key := range nested.Keys() {
		col, ok := columns[key]
		if !ok {
			return nil, t.unsupported(field + "." + key)
		}

		conditions = append(conditions, sq.Eq{col: nested[key]})
	}

	if len(conditions) == 1 {
		return conditions[0], nil
	}

	return conditions, nil
}

func (t *CriteriaTranslator) col(field string) (string, error) {
	if col, ok := columnMapping[field]; ok {
		return col, nil
	}

	return "", t.unsupported(field)
}

func (t *CriteriaTranslator) unsupported(field string) error {
	if t.logger != nil {
		t.logger.Warn().
			Str("field", field).
			Msg("unknown criteria field requested")
	}

	return fmt.Errorf("%w: %s", ErrUnsupportedField, field)
}
