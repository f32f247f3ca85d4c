package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChangesKeepOrderAndReplace(t *testing.T) {
	var c Changes
	c.Set("first_name", "Anna")
	c.Set("email", nil)
	c.Set("first_name", "Anne")

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"first_name", "email"}, c.Columns())
	assert.Equal(t, []any{"Anne", nil}, c.Values())
	assert.True(t, c.Has("email"))
	v, ok := c.Get("first_name")
	assert.True(t, ok)
	assert.Equal(t, "Anne", v)
}

func TestChangesSQL(t *testing.T) {
	var c Changes
	c.Set("name", "Classic")
	c.Set("current_price", "89.90")

	q, args := c.InsertSQL("products")
	assert.Equal(t, "INSERT INTO products (name, current_price) VALUES (?, ?)", q)
	assert.Equal(t, []any{"Classic", "89.90"}, args)

	set, args := c.SetSQL()
	assert.Equal(t, "name = ?, current_price = ?", set)
	assert.Len(t, args, 2)
}
