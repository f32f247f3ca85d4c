package db

import "strings"

// Assignment is one column and the storage value bound to it.
type Assignment struct {
	Column string
	Value  any
}

// Changes is an ordered column set for INSERT and UPDATE statements.
type Changes struct {
	list []Assignment
}

// Set adds or replaces a column value.
func (c *Changes) Set(column string, value any) {
	for i := range c.list {
		if c.list[i].Column == column {
			c.list[i].Value = value
			return
		}
	}
	c.list = append(c.list, Assignment{Column: column, Value: value})
}

func (c Changes) Len() int { return len(c.list) }

func (c Changes) Has(column string) bool {
	for _, a := range c.list {
		if a.Column == column {
			return true
		}
	}
	return false
}

func (c Changes) Get(column string) (any, bool) {
	for _, a := range c.list {
		if a.Column == column {
			return a.Value, true
		}
	}
	return nil, false
}

func (c Changes) Columns() []string {
	out := make([]string, len(c.list))
	for i, a := range c.list {
		out[i] = a.Column
	}
	return out
}

func (c Changes) Values() []any {
	out := make([]any, len(c.list))
	for i, a := range c.list {
		out[i] = a.Value
	}
	return out
}

// InsertSQL renders "INSERT INTO table (a, b) VALUES (?, ?)".
func (c Changes) InsertSQL(table string) (string, []any) {
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(c.list)), ", ")
	return "INSERT INTO " + table + " (" + strings.Join(c.Columns(), ", ") + ") VALUES (" + marks + ")", c.Values()
}

// SetSQL renders "a = ?, b = ?" for UPDATE statements.
func (c Changes) SetSQL() (string, []any) {
	parts := make([]string, len(c.list))
	for i, a := range c.list {
		parts[i] = a.Column + " = ?"
	}
	return strings.Join(parts, ", "), c.Values()
}
