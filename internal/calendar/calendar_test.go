package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

func TestParseIsStrict(t *testing.T) {
	_, ok := Parse("2024-03-10", time.UTC)
	assert.True(t, ok)

	for _, s := range []string{"", "2024-3-10", "2024-02-30", "2024-13-01", "10/03/2024", "2024-03-10T00:00:00Z", "2024-03-33"} {
		_, ok := Parse(s, time.UTC)
		assert.False(t, ok, "expected %q to be rejected", s)
	}
}

func TestIsValidFutureOrToday(t *testing.T) {
	assert.True(t, IsValidFutureOrToday("2024-03-10", now), "today is valid")
	assert.True(t, IsValidFutureOrToday("2024-03-11", now))
	assert.True(t, IsValidFutureOrToday("2025-01-01", now))
	assert.False(t, IsValidFutureOrToday("not-a-date", now))
}

func TestIsValidFutureOrTodayRejectsPastDates(t *testing.T) {
	for days := 1; days <= 400; days += 7 {
		past := now.AddDate(0, 0, -days).Format(ISOLayout)
		assert.False(t, IsValidFutureOrToday(past, now), "%s should be in the past", past)
	}
}

func TestIsValidFutureOrTodayAtMidnightBoundary(t *testing.T) {
	lateNight := time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC)
	assert.True(t, IsValidFutureOrToday("2024-03-10", lateNight))
	assert.False(t, IsValidFutureOrToday("2024-03-09", lateNight))
}

func TestIsValidFutureOrTodayUsesLocation(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	// 01:00 UTC on the 11th is still the 10th in São Paulo
	ref := time.Date(2024, 3, 11, 1, 0, 0, 0, time.UTC).In(saoPaulo)

	assert.Equal(t, "2024-03-10", Today(ref))
	assert.True(t, IsValidFutureOrToday("2024-03-10", ref))
}

func TestIsTodayAndIsFuture(t *testing.T) {
	assert.True(t, IsToday("2024-03-10", now))
	assert.False(t, IsToday("2024-03-11", now))
	assert.True(t, IsFuture("2024-03-11", now))
	assert.False(t, IsFuture("2024-03-10", now))
	assert.False(t, IsFuture("garbage", now))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "10/03/2024", Format("2024-03-10"))
	assert.Equal(t, "01/12/2025", Format("2025-12-01"))
	assert.Equal(t, "garbage", Format("garbage"))
}

func TestToday(t *testing.T) {
	assert.Equal(t, "2024-03-10", Today(now))
}

func TestDaysBetween(t *testing.T) {
	days, ok := DaysBetween("2024-02-28", "2024-03-01")
	assert.True(t, ok)
	assert.Equal(t, 2, days)

	_, ok = DaysBetween("bad", "2024-03-01")
	assert.False(t, ok)
}

func TestNext(t *testing.T) {
	dates := Next(now, 30)
	assert.Len(t, dates, 30)
	assert.Equal(t, "2024-03-10", dates[0])
	assert.Equal(t, "2024-03-31", dates[21])
	assert.Equal(t, "2024-04-08", dates[29])
}
