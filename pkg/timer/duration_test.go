package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0s", FormatDuration(0))
	assert.Equal(t, "42s", FormatDuration(42*time.Second))
	assert.Equal(t, "1m 5s", FormatDuration(65*time.Second))
	assert.Equal(t, "1h 1m 1s", FormatDuration(3661*time.Second))
	assert.Equal(t, "2h 0m 30s", FormatDuration(2*time.Hour+30*time.Second))
}

func TestFormatDuration_NegativeClampsToZero(t *testing.T) {
	assert.Equal(t, "0s", FormatDuration(-time.Minute))
}

func TestFormatMilliseconds(t *testing.T) {
	assert.Equal(t, "0s", FormatMilliseconds(0))
	assert.Equal(t, "1m 5s", FormatMilliseconds(65000))
	assert.Equal(t, "1h 1m 1s", FormatMilliseconds(3661000))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatClock(0))
	assert.Equal(t, "01:01:01", FormatClock(3661*time.Second))
	assert.Equal(t, "10:00:09", FormatClock(10*time.Hour+9*time.Second))
}

func TestElapsed(t *testing.T) {
	start := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 90*time.Second, Elapsed(start, start.Add(90*time.Second)))
	assert.Equal(t, time.Duration(0), Elapsed(start, start))
}

func TestElapsed_EndBeforeStartClampsToZero(t *testing.T) {
	start := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Duration(0), Elapsed(start, start.Add(-time.Hour)))
}
