package query

import (
	"testing"
	"time"

	"opticrm/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type status string

func TestBuilderSkipsEmptyValues(t *testing.T) {
	var nilID *int64
	empty := ""
	c := NewBuilder().
		Eq("organization_id", int64(1)).
		Eq("status", "").
		Eq("insurance_type", status("")).
		Eq("customer_id", nilID).
		Eq("email", &empty).
		Eq("product_type", nil).
		Search("   ", "name").
		Build()

	require.Equal(t, 1, c.Len())
	where, args := c.Where()
	assert.Equal(t, " WHERE organization_id = ?", where)
	assert.Equal(t, []any{int64(1)}, args)
}

func TestBuilderNormalizesValues(t *testing.T) {
	id := int64(7)
	c := NewBuilder().
		Eq("status", status("aktiv")).
		Eq("customer_id", &id).
		Gte("invoice_date", domain.NewDate(2024, time.January, 1)).
		Build()

	_, args := c.Where()
	assert.Equal(t, []any{"aktiv", int64(7), "2024-01-01"}, args)
}

func TestSearchFansOutWithOnePattern(t *testing.T) {
	c := NewBuilder().
		Eq("organization_id", int64(1)).
		Search("Müller", "first_name", "last_name", "email").
		Eq("status", "aktiv").
		Build()

	where, args := c.Where()
	assert.Equal(t,
		" WHERE organization_id = ? AND (LOWER(first_name) LIKE ? ESCAPE '!' OR LOWER(last_name) LIKE ? ESCAPE '!' OR LOWER(email) LIKE ? ESCAPE '!') AND status = ?",
		where)
	assert.Equal(t, []any{int64(1), "%müller%", "%müller%", "%müller%", "aktiv"}, args)
}

func TestSearchPatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, "%50!%!_off!!%", SearchPattern("50%_OFF!"))
}

func TestRangeOperators(t *testing.T) {
	where, args := NewBuilder().
		Gte("invoice_date", "2024-01-01").
		Lte("invoice_date", "2024-01-31").
		Build().
		Where()
	assert.Equal(t, " WHERE invoice_date >= ? AND invoice_date <= ?", where)
	assert.Equal(t, []any{"2024-01-01", "2024-01-31"}, args)
}

func TestClausesAreImmutable(t *testing.T) {
	b := NewBuilder().Eq("a", 1)
	first := b.Build()
	b.Eq("b", 2)

	assert.Equal(t, 1, first.Len())
	assert.Equal(t, 2, b.Build().Len())

	all := first.All()
	all[0].Fields[0] = "tampered"
	all[0].Value = 99
	where, args := first.Where()
	assert.Equal(t, " WHERE a = ?", where)
	assert.Equal(t, []any{1}, args)
}

func TestEmptyClausesRenderNothing(t *testing.T) {
	where, args := NewBuilder().Build().Where()
	assert.Empty(t, where)
	assert.Empty(t, args)
}
