package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const minutesPerHour = 60

var (
	ErrInvalidClock  = errors.New("invalid clock value, expected HH:MM")
	ErrEmptyInterval = errors.New("start time must be before end time")
)

// TimeSlot is a half-open interval [Start, End) in minutes of day.
// Both bounds fall inside a single calendar day; overnight slots are not
// representable.
type TimeSlot struct {
	Start int
	End   int
}

// ParseClock converts an "HH:MM" string to a minute of day.
func ParseClock(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}

	return hour*minutesPerHour + minute, nil
}

// FormatClock renders a minute of day back to "HH:MM".
func FormatClock(minuteOfDay int) string {
	return fmt.Sprintf("%02d:%02d", minuteOfDay/minutesPerHour, minuteOfDay%minutesPerHour)
}

// NewTimeSlot parses the "HH:MM" bounds of a slot. The interval must be
// non-empty.
func NewTimeSlot(startTime, endTime string) (TimeSlot, error) {
	start, err := ParseClock(startTime)
	if err != nil {
		return TimeSlot{}, err
	}

	end, err := ParseClock(endTime)
	if err != nil {
		return TimeSlot{}, err
	}

	if start >= end {
		return TimeSlot{}, ErrEmptyInterval
	}

	return TimeSlot{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open intervals intersect. A slot ending
// exactly when another starts does not overlap it.
func (t TimeSlot) Overlaps(other TimeSlot) bool {
	return t.Start < other.End && other.Start < t.End
}

// Hours returns the slot duration in hours, clamped to a minimum of one
// billable hour.
func (t TimeSlot) Hours() float64 {
	hours := float64(t.End-t.Start) / minutesPerHour
	if hours < 1 {
		return 1
	}

	return hours
}

// Amount computes the charge for the slot at the given hourly price, rounded
// to the nearest whole currency unit.
func (t TimeSlot) Amount(pricePerHour int64) int64 {
	return int64(math.Round(float64(pricePerHour) * t.Hours()))
}
