package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFallsBackToDefault(t *testing.T) {
	s := NewSortFields("created_at", "created_at", "last_name", "first_name")

	assert.Equal(t, "last_name", s.Resolve("last_name"))
	assert.Equal(t, "created_at", s.Resolve(""))
	assert.Equal(t, "created_at", s.Resolve("password"))
	assert.Equal(t, "created_at", s.Resolve("last_name; DROP TABLE customers"))
	assert.Equal(t, "created_at", s.Resolve("LAST_NAME"))
}

func TestNewSortFieldsRequiresWhitelistedDefault(t *testing.T) {
	assert.Panics(t, func() { NewSortFields("id", "name") })
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("ASC")
	require.NoError(t, err)
	assert.Equal(t, Asc, d)

	d, err = ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, Desc, d)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}

func TestOrderBy(t *testing.T) {
	assert.Equal(t, "c.last_name ASC, c.id ASC", Sort{Field: "last_name", Direction: Asc}.OrderBy("c."))
	assert.Equal(t, "total DESC, id DESC", Sort{Field: "total", Direction: Desc}.OrderBy(""))
}
