package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid date", input: "2024-01-06"},
		{name: "leap day", input: "2024-02-29"},
		{name: "not zero padded", input: "2024-1-6", wantErr: true},
		{name: "non leap year", input: "2023-02-29", wantErr: true},
		{name: "timestamp", input: "2024-01-06T10:00:00Z", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNightsAndEachNight(t *testing.T) {
	in, err := Parse("2024-01-30")
	require.NoError(t, err)
	out, err := Parse("2024-02-02")
	require.NoError(t, err)

	assert.Equal(t, 3, Nights(in, out))
	assert.Equal(t, []string{"2024-01-30", "2024-01-31", "2024-02-01"}, EachNight(in, out))

	assert.Equal(t, -3, Nights(out, in))
	assert.Empty(t, EachNight(out, in))
	assert.Empty(t, EachNight(in, in))
}

func TestEachDayInclusive(t *testing.T) {
	start, _ := Parse("2024-01-01")
	end, _ := Parse("2024-01-03")

	days := EachDay(start, end)
	require.Len(t, days, 3)
	assert.Equal(t, "2024-01-03", Format(days[2]))

	assert.Nil(t, EachDay(end, start))
}

func TestWeekdayConventions(t *testing.T) {
	saturday, _ := Parse("2024-01-06")
	assert.Equal(t, time.Saturday, saturday.Weekday())

	tests := []struct {
		mondayIndex int
		want        time.Weekday
	}{
		{0, time.Monday},
		{4, time.Friday},
		{5, time.Saturday},
		{6, time.Sunday},
	}
	for _, tt := range tests {
		got, err := WeekdayFromMondayIndex(tt.mondayIndex)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := WeekdayFromMondayIndex(7)
	assert.ErrorIs(t, err, ErrInvalidWeekday)
	_, err = WeekdayFromMondayIndex(-1)
	assert.ErrorIs(t, err, ErrInvalidWeekday)
}

func TestWeekdaySetIgnoresOutOfRange(t *testing.T) {
	set := WeekdaySet([]int{0, 6, 9, -2})
	assert.Len(t, set, 2)
	_, ok := set[time.Sunday]
	assert.True(t, ok)
	_, ok = set[time.Saturday]
	assert.True(t, ok)
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-06T10:00:00Z", time.Date(2024, 1, 6, 10, 0, 0, 0, time.UTC)},
		{"2024-01-06T17:00:00+07:00", time.Date(2024, 1, 6, 10, 0, 0, 0, time.UTC)},
		{"2024-01-06T10:00:00", time.Date(2024, 1, 6, 10, 0, 0, 0, time.UTC)},
		{"2024-01-06T10:00", time.Date(2024, 1, 6, 10, 0, 0, 0, time.UTC)},
		{"2024-01-06", time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
		})
	}

	_, err := ParseTimestamp("next tuesday")
	assert.Error(t, err)
}
