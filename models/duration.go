package models

import (
	"fmt"
	"math"
	"time"
)

const clockLayout = "15:04"

// ParseClock parses a 24-hour "HH:MM" time of day into an offset from midnight.
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// SleepDuration computes the time between bedtime and wakeTime. A wake time
// earlier than bedtime is taken to be on the following day. Equal times give 0.
func SleepDuration(bedtime, wakeTime string) (time.Duration, error) {
	bed, err := ParseClock(bedtime)
	if err != nil {
		return 0, err
	}
	wake, err := ParseClock(wakeTime)
	if err != nil {
		return 0, err
	}
	if wake < bed {
		wake += 24 * time.Hour
	}
	return wake - bed, nil
}

// SplitDuration returns whole hours and the remaining whole minutes.
func SplitDuration(d time.Duration) (hours, minutes int) {
	hours = int(d / time.Hour)
	minutes = int((d % time.Hour) / time.Minute)
	return hours, minutes
}

// FormatDuration renders d as "8h 15m".
func FormatDuration(d time.Duration) string {
	h, m := SplitDuration(d)
	return fmt.Sprintf("%dh %dm", h, m)
}

// Hours returns d in fractional hours.
func Hours(d time.Duration) float64 {
	return d.Hours()
}

func hoursToDuration(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}

// RoundTenth rounds to one decimal place.
func RoundTenth(f float64) float64 {
	return math.Round(f*10) / 10
}
