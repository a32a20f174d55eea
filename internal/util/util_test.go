package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSliceSubtract(t *testing.T) {
	t.Parallel()

	a := []string{"a", "b", "c"}
	b := []string{"a", "c"}

	assert.Equal(t, []string{"b"}, SliceSubtract(a, b))
	assert.Equal(t, []string{"a", "b", "c"}, a)
	assert.Equal(t, []string{"a", "c"}, b)
	assert.Empty(t, SliceSubtract(b, a))
}

func TestSortedKeys(t *testing.T) {
	t.Parallel()

	keys := SortedKeys(map[string]string{"zeta": "1", "alpha": "2", "mid": "3"})
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, keys)
	assert.Empty(t, SortedKeys(map[string]int{}))
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		duration time.Duration
		want     string
	}{
		{0, "0 seconds"},
		{time.Second, "1 second"},
		{45 * time.Second, "45 seconds"},
		{time.Minute, "1 minute"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1 hour, 2 minutes, 3 seconds"},
		{2 * time.Hour, "2 hours"},
		{26 * time.Hour, "26 hours"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.duration), tt.duration.String())
	}
}

func TestFormatTimeUnit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1 hour", FormatTimeUnit(1, "hour", "hours", false))
	assert.Equal(t, "3 hours", FormatTimeUnit(3, "hour", "hours", false))
	assert.Empty(t, FormatTimeUnit(0, "hour", "hours", false))
	assert.Equal(t, "0 seconds", FormatTimeUnit(0, "second", "seconds", true))
}
