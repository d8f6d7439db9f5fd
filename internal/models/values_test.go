package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDay(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"time", time.Date(2024, time.January, 5, 13, 4, 5, 0, time.UTC), "2024-01-05"},
		{"iso8601", "20240105T00:00:00", "2024-01-05"},
		{"rfc3339", "2024-01-05T10:00:00Z", "2024-01-05"},
		{"sql", "2024-01-05 10:00:00", "2024-01-05"},
		{"day", "2024-01-05", "2024-01-05"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FormatDay(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := FormatDay(42)
	assert.Error(t, err)
	_, err = FormatDay("yesterday")
	assert.Error(t, err)
}

func TestAsConversions(t *testing.T) {
	i, ok := AsInt(int64(501))
	assert.True(t, ok)
	assert.Equal(t, 501, i)

	i, ok = AsInt(float64(12))
	assert.True(t, ok)
	assert.Equal(t, 12, i)

	_, ok = AsInt(12.5)
	assert.False(t, ok)

	_, ok = AsInt(true)
	assert.False(t, ok)

	b, ok := AsBool(1)
	assert.True(t, ok)
	assert.True(t, b)

	b, ok = AsBool("false")
	assert.True(t, ok)
	assert.False(t, b)

	f, ok := AsFloat(int32(3))
	assert.True(t, ok)
	assert.Equal(t, 3.0, f)
}
