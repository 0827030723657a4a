package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"08:00", 480},
		{"12:30", 750},
		{"23:59", 1439},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseClockRejectsMalformedInput(t *testing.T) {
	for _, in := range []string{"", "0900", "9", "24:00", "12:60", "ab:cd", "12:30:00", "-1:00"} {
		_, err := ParseClock(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "08:00", FormatClock(480))
	assert.Equal(t, "00:05", FormatClock(5))
	assert.Equal(t, "23:59", FormatClock(1439))
}

func TestFormatClockWrapsPastMidnight(t *testing.T) {
	assert.Equal(t, "01:00", FormatClock(25*60))
}

func TestDuration(t *testing.T) {
	d, err := Duration("09:00", "10:30")
	require.NoError(t, err)
	assert.Equal(t, 90, d)
}

func TestDurationMayBeNegative(t *testing.T) {
	d, err := Duration("10:00", "09:00")
	require.NoError(t, err)
	assert.Equal(t, -60, d)
}

func TestDurationMalformedEndpoints(t *testing.T) {
	_, err := Duration("nine", "10:00")
	assert.Error(t, err)

	_, err = Duration("09:00", "ten")
	assert.Error(t, err)
}
