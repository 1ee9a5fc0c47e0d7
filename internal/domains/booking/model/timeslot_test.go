package model

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	t.Run("parses valid clocks", func(t *testing.T) {
		cases := map[string]int{
			"00:00": 0,
			"09:00": 540,
			"09:30": 570,
			"23:59": 1439,
		}
		for in, want := range cases {
			got, err := ParseClock(in)
			require.NoError(t, err)
			assert.Equal(t, want, got, in)
		}
	})

	t.Run("rejects malformed values", func(t *testing.T) {
		for _, in := range []string{"", "9", "24:00", "12:60", "ab:cd", "12:00:00", "-1:30"} {
			_, err := ParseClock(in)
			assert.ErrorIs(t, err, ErrInvalidClock, in)
		}
	})
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "09:05", FormatClock(545))
	assert.Equal(t, "23:59", FormatClock(1439))
}

func TestNewTimeSlot(t *testing.T) {
	t.Run("accepts a valid interval", func(t *testing.T) {
		slot, err := NewTimeSlot("09:00", "11:30")
		require.NoError(t, err)
		assert.Equal(t, TimeSlot{Start: 540, End: 690}, slot)
	})

	t.Run("rejects empty and inverted intervals", func(t *testing.T) {
		_, err := NewTimeSlot("09:00", "09:00")
		assert.ErrorIs(t, err, ErrEmptyInterval)

		_, err = NewTimeSlot("11:00", "09:00")
		assert.ErrorIs(t, err, ErrEmptyInterval)
	})
}

func TestTimeSlotOverlaps(t *testing.T) {
	base := TimeSlot{Start: 600, End: 720} // 10:00-12:00

	t.Run("back to back slots do not overlap", func(t *testing.T) {
		assert.False(t, base.Overlaps(TimeSlot{Start: 720, End: 780}))
		assert.False(t, base.Overlaps(TimeSlot{Start: 540, End: 600}))
	})

	t.Run("partial and full containment overlap", func(t *testing.T) {
		assert.True(t, base.Overlaps(TimeSlot{Start: 660, End: 780}))
		assert.True(t, base.Overlaps(TimeSlot{Start: 540, End: 660}))
		assert.True(t, base.Overlaps(TimeSlot{Start: 630, End: 690}))
		assert.True(t, base.Overlaps(TimeSlot{Start: 540, End: 780}))
	})

	t.Run("is symmetric", func(t *testing.T) {
		r := rand.New(rand.NewSource(42))
		for i := 0; i < 500; i++ {
			a := randomSlot(r)
			b := randomSlot(r)
			assert.Equal(t, a.Overlaps(b), b.Overlaps(a))
		}
	})
}

func TestTimeSlotHours(t *testing.T) {
	t.Run("computes fractional hours", func(t *testing.T) {
		slot := TimeSlot{Start: 540, End: 690}
		assert.InDelta(t, 2.5, slot.Hours(), 1e-9)
	})

	t.Run("clamps sub-hour slots to one billable hour", func(t *testing.T) {
		slot := TimeSlot{Start: 540, End: 570}
		assert.InDelta(t, 1.0, slot.Hours(), 1e-9)
	})
}

func TestTimeSlotAmount(t *testing.T) {
	t.Run("multiplies hourly price by duration", func(t *testing.T) {
		slot := TimeSlot{Start: 600, End: 720}
		assert.Equal(t, int64(3000), slot.Amount(1500))
	})

	t.Run("rounds to the nearest unit", func(t *testing.T) {
		slot := TimeSlot{Start: 600, End: 690}
		assert.Equal(t, int64(1499), slot.Amount(999))
	})
}

func randomSlot(r *rand.Rand) TimeSlot {
	start := r.Intn(1380)
	return TimeSlot{Start: start, End: start + 1 + r.Intn(1439-start)}
}
