package querybuilder

import (
	"fmt"
	"sort"
	"strings"
)

// UpdateData maps column names to new values
type UpdateData map[string]interface{}

type insertRows [][]interface{}

// QueryBuilder composes SQL with "?" placeholders. Callers rebind the result
// for their driver.
type QueryBuilder interface {
	Select(cols ...string) QueryBuilder
	From(table string) QueryBuilder
	Into(table string) QueryBuilder
	Where(clause string, args ...interface{}) QueryBuilder
	And(clause string, args ...interface{}) QueryBuilder

	Insert(cols ...string) QueryBuilder
	Values(values ...interface{}) QueryBuilder

	Update(table string, data UpdateData) QueryBuilder
	Build() (string, []interface{})

	DoNothing() QueryBuilder
	OnConflict(cols ...string) QueryBuilder
}

type queryBuilder struct {
	table      string
	cols       []string
	conditions []Condition
	values     insertRows
	updateData UpdateData
	onConflict []string
	doNothing  bool
	schema     string
}

func NewQueryBuilder(schema string) QueryBuilder {
	return &queryBuilder{
		schema: schema,
	}
}

func (q *queryBuilder) DoNothing() QueryBuilder {
	q.doNothing = true
	return q
}

func (q *queryBuilder) OnConflict(cols ...string) QueryBuilder {
	q.onConflict = cols
	return q
}

func (q *queryBuilder) Select(cols ...string) QueryBuilder {
	q.cols = append(q.cols, cols...)
	return q
}

func (q *queryBuilder) Insert(cols ...string) QueryBuilder {
	q.cols = cols
	return q
}

func (q *queryBuilder) Values(values ...interface{}) QueryBuilder {
	q.values = append(q.values, values)
	return q
}

func (q *queryBuilder) Update(table string, data UpdateData) QueryBuilder {
	q.table = table
	q.updateData = data
	return q
}

func (q *queryBuilder) And(clause string, args ...interface{}) QueryBuilder {
	q.conditions = append(q.conditions, Condition{
		condType: CondTypeAnd,
		clause:   clause,
		args:     args,
	})
	return q
}

func (q *queryBuilder) Where(clause string, args ...interface{}) QueryBuilder {
	return q.And(clause, args...)
}

func (q *queryBuilder) From(table string) QueryBuilder {
	q.table = table
	return q
}

func (q *queryBuilder) Into(table string) QueryBuilder {
	q.table = table
	return q
}

func buildCondition(conditions []Condition) (string, []interface{}) {
	parts := make([]string, 0, 2*len(conditions))
	args := make([]interface{}, 0)

	for i, cond := range conditions {
		if i > 0 {
			parts = append(parts, cond.condType.ToString())
		}
		parts = append(parts, cond.clause)
		args = append(args, cond.args...)
	}

	return strings.Join(parts, " "), args
}

func (q *queryBuilder) tableName() string {
	if q.schema == "" {
		return q.table
	}
	return fmt.Sprintf("%s.%s", q.schema, q.table)
}

func (q *queryBuilder) Build() (string, []interface{}) {
	switch {
	case len(q.values) > 0:
		return q.buildInsert()
	case len(q.updateData) > 0:
		return q.buildUpdate()
	default:
		return q.buildSelect()
	}
}

func (q *queryBuilder) appendWhere(query string, args []interface{}) (string, []interface{}) {
	if len(q.conditions) == 0 {
		return query, args
	}
	condition, condArgs := buildCondition(q.conditions)
	if condition == "" {
		return query, args
	}
	return query + fmt.Sprintf(" WHERE %s", condition), append(args, condArgs...)
}

func (q *queryBuilder) buildSelect() (string, []interface{}) {
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(q.cols, ", "), q.tableName())
	return q.appendWhere(query, nil)
}

func (q *queryBuilder) buildInsert() (string, []interface{}) {
	numOfParam := len(q.cols)
	if numOfParam == 0 {
		return "", nil
	}

	valueTuples := make([]string, 0, len(q.values))
	args := make([]interface{}, 0, numOfParam*len(q.values))
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", numOfParam), ", ")
	for _, row := range q.values {
		if len(row) != numOfParam {
			return "", nil
		}
		args = append(args, row...)
		valueTuples = append(valueTuples, fmt.Sprintf("(%s)", placeholders))
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", q.tableName(), strings.Join(q.cols, ", "), strings.Join(valueTuples, ", "))

	// DO NOTHING is the only conflict action emitted
	if len(q.onConflict) > 0 {
		if !q.doNothing {
			return "", nil
		}
		query += fmt.Sprintf(" ON CONFLICT (%s) DO NOTHING", strings.Join(q.onConflict, ", "))
	}

	return query, args
}

func (q *queryBuilder) buildUpdate() (string, []interface{}) {
	cols := make([]string, 0, len(q.updateData))
	for col := range q.updateData {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	setClause := make([]string, 0, len(cols))
	args := make([]interface{}, 0, len(cols))
	for _, col := range cols {
		setClause = append(setClause, fmt.Sprintf("%s = ?", col))
		args = append(args, q.updateData[col])
	}
	query := fmt.Sprintf("UPDATE %s SET %s", q.tableName(), strings.Join(setClause, ", "))
	return q.appendWhere(query, args)
}
