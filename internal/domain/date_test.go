package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSONRoundTrip(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-03-09"`), &d))
	assert.Equal(t, NewDate(2024, time.March, 9), d)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-09"`, string(b))
}

func TestDateRejectsDateTime(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"2024-03-09T10:00:00Z"`), &d))
}

func TestDateScan(t *testing.T) {
	cases := []any{
		time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC),
		"2023-12-31",
		[]byte("2023-12-31 00:00:00"),
	}
	for _, src := range cases {
		var d Date
		require.NoError(t, d.Scan(src), "%T", src)
		assert.Equal(t, "2023-12-31", d.String())
	}

	var d Date
	assert.Error(t, d.Scan(42))
}

func TestDateValue(t *testing.T) {
	v, err := NewDate(2025, time.January, 2).Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-01-02", v)
}
