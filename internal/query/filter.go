// Package query holds the list pipeline shared by every resource: predicate
// building, sort resolution and pagination.
package query

import (
	"database/sql/driver"
	"reflect"
	"strings"
)

type Operator string

const (
	OpEq     Operator = "eq"
	OpGte    Operator = "gte"
	OpLte    Operator = "lte"
	OpSearch Operator = "search"
)

// likeEscape works for MySQL and SQLite alike; a backslash would need
// different quoting in each dialect.
const likeEscape = "!"

// Clause is one predicate. A search clause spans several columns that share
// one pattern; every other operator uses a single column.
type Clause struct {
	Fields []string
	Op     Operator
	Value  any
}

// Clauses is an ANDed predicate list. It is built once per request and
// handed unchanged to both the count and the row query.
type Clauses struct {
	list []Clause
}

func (c Clauses) Len() int { return len(c.list) }

// All returns a copy of the clauses.
func (c Clauses) All() []Clause {
	out := make([]Clause, len(c.list))
	for i, cl := range c.list {
		out[i] = Clause{Fields: append([]string(nil), cl.Fields...), Op: cl.Op, Value: cl.Value}
	}
	return out
}

// Where renders " WHERE ..." with positional arguments, or "" when empty.
func (c Clauses) Where() (string, []any) {
	if len(c.list) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(c.list))
	args := make([]any, 0, len(c.list))
	for _, cl := range c.list {
		switch cl.Op {
		case OpSearch:
			ors := make([]string, 0, len(cl.Fields))
			for _, f := range cl.Fields {
				ors = append(ors, "LOWER("+f+") LIKE ? ESCAPE '"+likeEscape+"'")
				args = append(args, cl.Value)
			}
			parts = append(parts, "("+strings.Join(ors, " OR ")+")")
		case OpGte:
			parts = append(parts, cl.Fields[0]+" >= ?")
			args = append(args, cl.Value)
		case OpLte:
			parts = append(parts, cl.Fields[0]+" <= ?")
			args = append(args, cl.Value)
		default:
			parts = append(parts, cl.Fields[0]+" = ?")
			args = append(args, cl.Value)
		}
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

// Builder accumulates clauses. Empty values (nil, "", nil pointers) are
// dropped rather than compared against NULL.
type Builder struct {
	clauses []Clause
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) Eq(field string, value any) *Builder {
	return b.add(field, OpEq, value)
}

func (b *Builder) Gte(field string, value any) *Builder {
	return b.add(field, OpGte, value)
}

func (b *Builder) Lte(field string, value any) *Builder {
	return b.add(field, OpLte, value)
}

// Search adds one case-insensitive substring match over fields, ORed.
func (b *Builder) Search(term string, fields ...string) *Builder {
	term = strings.TrimSpace(term)
	if term == "" || len(fields) == 0 {
		return b
	}
	b.clauses = append(b.clauses, Clause{
		Fields: append([]string(nil), fields...),
		Op:     OpSearch,
		Value:  SearchPattern(term),
	})
	return b
}

func (b *Builder) Build() Clauses {
	return Clauses{list: append([]Clause(nil), b.clauses...)}
}

func (b *Builder) add(field string, op Operator, value any) *Builder {
	v, ok := normalize(value)
	if !ok {
		return b
	}
	b.clauses = append(b.clauses, Clause{Fields: []string{field}, Op: op, Value: v})
	return b
}

// SearchPattern lowercases term, escapes LIKE wildcards and wraps it in %.
func SearchPattern(term string) string {
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}

func normalize(value any) (any, bool) {
	if value == nil {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		value = rv.Elem().Interface()
		rv = rv.Elem()
	}
	if valuer, ok := value.(driver.Valuer); ok {
		v, err := valuer.Value()
		if err != nil || v == nil {
			return nil, false
		}
		return v, true
	}
	if rv.Kind() == reflect.String {
		s := rv.String()
		return s, s != ""
	}
	return value, true
}
