package query

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageClamps(t *testing.T) {
	assert.Equal(t, Page{Number: 1, PerPage: 1}, NewPage(0, 0))
	assert.Equal(t, Page{Number: 3, PerPage: 100}, NewPage(3, 500))
	assert.Equal(t, Page{Number: 2, PerPage: 20}, NewPage(2, 20))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, NewPage(1, 20).Offset())
	assert.Equal(t, 40, NewPage(3, 20).Offset())
	assert.Equal(t, 20, NewPage(3, 20).Limit())
}

func TestOffsetSaturatesOnHugePages(t *testing.T) {
	assert.Equal(t, math.MaxInt, NewPage(math.MaxInt, 2).Offset())
	assert.Equal(t, math.MaxInt, NewPage(math.MaxInt/100+2, 100).Offset())
	assert.Equal(t, 0, Page{Number: 5}.Offset())

	r := NewPageResult[int](nil, 45, NewPage(math.MaxInt, 2))
	assert.Empty(t, r.Items)
	assert.False(t, r.HasNext)
}

func TestPageResultScenario(t *testing.T) {
	items := make([]int, 20)
	r := NewPageResult(items, 45, NewPage(1, 20))

	assert.Equal(t, 45, r.Total)
	assert.Equal(t, 3, r.TotalPages)
	assert.True(t, r.HasNext)
	assert.False(t, r.HasPrev)
	assert.Len(t, r.Items, 20)
}

func TestPageResultLastAndBeyond(t *testing.T) {
	last := NewPageResult(make([]int, 5), 45, NewPage(3, 20))
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrev)

	beyond := NewPageResult[int](nil, 45, NewPage(9, 20))
	assert.NotNil(t, beyond.Items)
	assert.Empty(t, beyond.Items)
	assert.False(t, beyond.HasNext)
	assert.True(t, beyond.HasPrev)
}

func TestPageResultEmptyTotal(t *testing.T) {
	for _, page := range []int{1, 2, 50} {
		r := NewPageResult[string](nil, 0, NewPage(page, 20))
		assert.Equal(t, 0, r.TotalPages)
		assert.False(t, r.HasNext)
		assert.Equal(t, page > 1, r.HasPrev)
	}
}

func TestNavigationFlagsHoldAcrossGrid(t *testing.T) {
	for _, total := range []int{0, 1, 19, 20, 21, 99, 100, 101, 1000} {
		for _, perPage := range []int{1, 7, 20, 100} {
			pages := TotalPages(total, perPage)
			for page := 1; page <= pages+2; page++ {
				p := NewPage(page, perPage)
				n := total - p.Offset()
				if n < 0 {
					n = 0
				}
				if n > perPage {
					n = perPage
				}
				r := NewPageResult(make([]int, n), total, p)
				assert.LessOrEqual(t, len(r.Items), perPage)
				assert.Equal(t, page < pages, r.HasNext, "total=%d per_page=%d page=%d", total, perPage, page)
				assert.Equal(t, page > 1, r.HasPrev)
			}
		}
	}
}
