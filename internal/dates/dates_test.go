package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthRange_Bounds(t *testing.T) {
	start, end, err := MonthRange(3, 2024)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 3, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC), end)
}

func TestMonthRange_LeapFebruary(t *testing.T) {
	start, end, err := MonthRange(2, 2024)
	require.NoError(t, err)

	days := Days(start, end)
	assert.Len(t, days, 29)
	assert.Equal(t, "2024-02-01", days[0].Format(DayLayout))
	assert.Equal(t, "2024-02-29", days[28].Format(DayLayout))
}

func TestMonthRange_NonLeapFebruary(t *testing.T) {
	start, end, err := MonthRange(2, 2023)
	require.NoError(t, err)
	assert.Len(t, Days(start, end), 28)
}

func TestMonthRange_ThirtyDayMonth(t *testing.T) {
	start, end, err := MonthRange(4, 2024)
	require.NoError(t, err)
	assert.Len(t, Days(start, end), 30)
}

func TestMonthRange_InvalidMonth(t *testing.T) {
	_, _, err := MonthRange(0, 2024)
	assert.Error(t, err)
	_, _, err = MonthRange(13, 2024)
	assert.Error(t, err)
}

func TestDayRange_HalfOpen(t *testing.T) {
	start, next := DayRange(time.Date(2024, 3, 15, 17, 42, 3, 0, time.UTC))

	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), next)
}

func TestParseDay(t *testing.T) {
	day, err := ParseDay("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), day)

	_, err = ParseDay("29-02-2024")
	assert.Error(t, err)
}

func TestDayBounds_ReferenceTimezone(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Dubai")
	require.NoError(t, err)

	// 22:30 UTC is already the next day in Dubai (UTC+4).
	now := time.Date(2024, 3, 15, 22, 30, 0, 0, time.UTC)
	start, end := DayBounds(now, loc)

	assert.Equal(t, "2024-03-16", start.Format(DayLayout))
	assert.Equal(t, "2024-03-16", end.In(loc).Format(DayLayout))
	assert.True(t, end.After(start))
}

func TestLastNDays_SevenDayWindow(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Dubai")
	require.NoError(t, err)

	now := time.Date(2024, 3, 15, 12, 0, 0, 0, loc)
	keys, first := LastNDays(now, 7, loc)

	require.Len(t, keys, 7)
	assert.Equal(t, "2024-03-09", keys[0])
	assert.Equal(t, "2024-03-15", keys[6])
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, loc), first)
}

func TestLastNDays_CrossesMonthBoundary(t *testing.T) {
	keys, _ := LastNDays(time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC), 7, time.UTC)

	assert.Equal(t, []string{
		"2024-02-25", "2024-02-26", "2024-02-27", "2024-02-28",
		"2024-02-29", "2024-03-01", "2024-03-02",
	}, keys)
}
