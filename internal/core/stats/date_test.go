package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindows(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

	cur := currentWindow(now)
	prev := previousWindow(now)

	assert.Equal(t, now, cur.End)
	assert.Equal(t, now.AddDate(0, 0, -30), cur.Start)
	assert.Equal(t, cur.Start, prev.End)
	assert.Equal(t, now.AddDate(0, 0, -60), prev.Start)

	assert.True(t, cur.Contains(now.AddDate(0, 0, -1)))
	assert.False(t, cur.Contains(now)) // half-open interval
	assert.True(t, prev.Contains(now.AddDate(0, 0, -45)))
	assert.False(t, prev.Contains(now.AddDate(0, 0, -10)))
}

func TestTrailingMonthsStart(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	from := trailingMonthsStart(now, 6)
	assert.Equal(t, time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC), from)
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "Jan 2025", monthKey(time.Date(2025, time.January, 31, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Dec 2024", monthKey(time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)))
}

func TestParsePackageStatus(t *testing.T) {
	assert.Equal(t, PackageInTransit, ParsePackageStatus("in_transit"))
	assert.Equal(t, PackageAtCustoms, ParsePackageStatus("customs"))
	assert.Equal(t, PackageUnknown, ParsePackageStatus(""))
	assert.Equal(t, PackageUnknown, ParsePackageStatus("lost_in_space"))
}
