package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{in: "18:00", want: TimeOfDay(18 * 60)},
		{in: "00:00", want: TimeOfDay(0)},
		{in: "23:59", want: TimeOfDay(23*60 + 59)},
		{in: "19:45:30", want: TimeOfDay(19*60 + 45)},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "garbage", wantErr: true},
	}

	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "09:05", MustTimeOfDay("9:05").String())
	assert.Equal(t, "18:00", MustTimeOfDay("18:00").String())
}

func TestWindowMinutes(t *testing.T) {
	w := Window{Start: MustTimeOfDay("18:00"), Finish: MustTimeOfDay("19:45")}
	assert.Equal(t, 105, w.Minutes())
}

func TestOverlapsPointInclusion(t *testing.T) {
	existing := Window{Start: MustTimeOfDay("18:00"), Finish: MustTimeOfDay("19:45")}

	// start of the candidate falls inside the existing window
	assert.True(t, Overlaps(existing, Window{Start: MustTimeOfDay("19:00"), Finish: MustTimeOfDay("21:00")}))
	// finish of the candidate falls inside the existing window
	assert.True(t, Overlaps(existing, Window{Start: MustTimeOfDay("17:00"), Finish: MustTimeOfDay("18:30")}))
	// boundaries are inclusive
	assert.True(t, Overlaps(existing, Window{Start: MustTimeOfDay("19:45"), Finish: MustTimeOfDay("21:00")}))
	// disjoint windows do not overlap
	assert.False(t, Overlaps(existing, Window{Start: MustTimeOfDay("20:00"), Finish: MustTimeOfDay("22:00")}))
}

func TestOverlapsIsNotSymmetric(t *testing.T) {
	// candidate fully contains the existing window: neither of its
	// endpoints falls inside, so the test misses it in this direction.
	inner := Window{Start: MustTimeOfDay("18:00"), Finish: MustTimeOfDay("19:00")}
	outer := Window{Start: MustTimeOfDay("17:00"), Finish: MustTimeOfDay("20:00")}

	assert.False(t, Overlaps(inner, outer))
	assert.True(t, Overlaps(outer, inner))
}

func TestDeriveFinish(t *testing.T) {
	start := MustTimeOfDay("18:00")

	finish := DeriveFinish(start, 90, 15)
	assert.Equal(t, "19:45", finish.String())

	// deriving twice from the same inputs yields the same result
	assert.Equal(t, finish, DeriveFinish(start, 90, 15))

	// wraps within the same day, no overnight rollover
	assert.Equal(t, "00:30", DeriveFinish(MustTimeOfDay("23:00"), 75, 15).String())
}

func TestDateRange(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	r := NewDateRange(start, time.Time{})
	assert.Equal(t, r.Start, r.Finish)
	assert.True(t, r.ContainsDate(start))
	assert.False(t, r.ContainsDate(start.AddDate(0, 0, 1)))

	long := NewDateRange(start, start.AddDate(0, 0, 6))
	assert.True(t, long.ContainsDate(start.AddDate(0, 0, 3)))

	assert.True(t, long.Intersects(NewDateRange(start.AddDate(0, 0, 6), start.AddDate(0, 0, 9))))
	assert.False(t, long.Intersects(NewDateRange(start.AddDate(0, 0, 7), start.AddDate(0, 0, 9))))
}
