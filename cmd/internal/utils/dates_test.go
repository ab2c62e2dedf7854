package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToday_UsesConfiguredTimezone(t *testing.T) {
	t.Cleanup(func() {
		NowFunc = time.Now
		require.NoError(t, SetLocation(DefaultTimezone))
	})

	tests := []struct {
		name     string
		timezone string
		now      time.Time
		want     string
	}{
		{
			name:     "late evening in Sao Paulo is still the previous day",
			timezone: "America/Sao_Paulo",
			now:      time.Date(2025, time.March, 13, 1, 0, 0, 0, time.UTC),
			want:     "2025-03-12",
		},
		{
			name:     "afternoon is the same day everywhere",
			timezone: "America/Sao_Paulo",
			now:      time.Date(2025, time.March, 12, 15, 0, 0, 0, time.UTC),
			want:     "2025-03-12",
		},
		{
			name:     "utc follows the utc calendar",
			timezone: "UTC",
			now:      time.Date(2025, time.March, 13, 1, 0, 0, 0, time.UTC),
			want:     "2025-03-13",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, SetLocation(tt.timezone))
			NowFunc = func() time.Time { return tt.now }

			today := Today()
			assert.Equal(t, tt.want, FormatDate(today))
			assert.Equal(t, time.UTC, today.Location())
			assert.Zero(t, today.Hour())
		})
	}
}

func TestSetLocation(t *testing.T) {
	t.Cleanup(func() { require.NoError(t, SetLocation(DefaultTimezone)) })

	assert.Equal(t, DefaultTimezone, Location().String())

	require.NoError(t, SetLocation("  "))
	assert.Equal(t, DefaultTimezone, Location().String())

	assert.Error(t, SetLocation("America/Atlantida"))
	assert.Equal(t, DefaultTimezone, Location().String())

	require.NoError(t, SetLocation("UTC"))
	assert.Equal(t, "UTC", Location().String())
}

func TestDaysBetween_AcrossLocalMidnight(t *testing.T) {
	t.Cleanup(func() { NowFunc = time.Now })
	NowFunc = func() time.Time { return time.Date(2025, time.March, 13, 2, 30, 0, 0, time.UTC) }

	last, ok := ParseDate("2025-03-05")
	require.True(t, ok)
	assert.Equal(t, 7, DaysBetween(last, Today()))
}
