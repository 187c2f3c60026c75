package daykey_test

import (
	"testing"
	"time"

	"github.com/liftlog-app/liftlog/internal/daykey"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	d, err := daykey.Parse("2025-08-31")
	require.NoError(t, err)
	assert.Equal(t, "2025-08-31", d.String())

	_, err = daykey.Parse("2025-02-30")
	assert.ErrorIs(t, err, daykey.ErrInvalidDayKey)
	_, err = daykey.Parse("31.08.2025")
	assert.ErrorIs(t, err, daykey.ErrInvalidDayKey)
	_, err = daykey.Parse("")
	assert.ErrorIs(t, err, daykey.ErrInvalidDayKey)
}

func TestFromTime_UsesLocalCalendarDate(t *testing.T) {
	// 23:30 local on the 10th stays on the 10th, whatever UTC says
	localMidnightish := time.Date(2025, 3, 10, 23, 30, 0, 0, time.Local)
	assert.Equal(t, daykey.DayKey("2025-03-10"), daykey.FromTime(localMidnightish))
}

func TestAddDays(t *testing.T) {
	d := daykey.DayKey("2025-03-01")
	assert.Equal(t, daykey.DayKey("2025-02-28"), d.AddDays(-1))
	assert.Equal(t, daykey.DayKey("2025-03-03"), d.AddDays(2))
	assert.True(t, d.AddDays(-1).Before(d))
}

func TestNormalizeTimestamp(t *testing.T) {
	now := time.Date(2025, 8, 31, 14, 12, 0, 0, time.UTC)

	got, err := daykey.NormalizeTimestamp(now)
	require.NoError(t, err)
	assert.True(t, got.Equal(now))

	got, err = daykey.NormalizeTimestamp(now.UnixMilli())
	require.NoError(t, err)
	assert.True(t, got.Equal(now))

	got, err = daykey.NormalizeTimestamp(float64(now.UnixMilli()))
	require.NoError(t, err)
	assert.True(t, got.Equal(now))

	got, err = daykey.NormalizeTimestamp(now.Format(time.RFC3339))
	require.NoError(t, err)
	assert.True(t, got.Equal(now.Truncate(time.Second)))

	got, err = daykey.NormalizeTimestamp("2025-08-31")
	require.NoError(t, err)
	assert.Equal(t, daykey.DayKey("2025-08-31"), daykey.FromTime(got))

	_, err = daykey.NormalizeTimestamp(struct{}{})
	assert.Error(t, err)

	_, err = daykey.NormalizeTimestamp("not-a-time")
	assert.Error(t, err)
}

func TestMonth(t *testing.T) {
	m, err := daykey.ParseMonth("2025-02")
	require.NoError(t, err)
	assert.Equal(t, 28, m.Days())
	assert.Equal(t, "2025-02", m.String())

	leap, err := daykey.ParseMonth("2024-02")
	require.NoError(t, err)
	assert.Equal(t, 29, leap.Days())

	assert.True(t, m.Contains(daykey.DayKey("2025-02-28")))
	assert.False(t, m.Contains(daykey.DayKey("2025-03-01")))

	_, err = daykey.ParseMonth("2025-13")
	assert.Error(t, err)
}
