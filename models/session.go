package models

import (
	"strconv"
	"strings"
	"time"
)

// Quality bounds for a logged night.
const (
	MinQuality     = 1
	MaxQuality     = 10
	DefaultQuality = 7
)

// SleepSession is one logged night.
type SleepSession struct {
	ID       string    `json:"id,omitempty"`
	Bedtime  string    `json:"bedtime"`  // "23:00"
	WakeTime string    `json:"wakeTime"` // "07:00"
	Quality  int       `json:"quality"`
	Notes    string    `json:"notes"`
	Date     time.Time `json:"date"` // when the session was logged
}

// Duration returns the time slept. Unparseable clocks count as zero.
func (s SleepSession) Duration() time.Duration {
	d, err := SleepDuration(s.Bedtime, s.WakeTime)
	if err != nil {
		return 0
	}
	return d
}

// Tier returns the quality band of the session.
func (s SleepSession) Tier() QualityTier {
	return Tier(s.Quality)
}

// Check reports whether a stored session holds valid clocks and a rated quality.
func (s SleepSession) Check() error {
	if _, err := ParseClock(s.Bedtime); err != nil {
		return Invalid("bedtime", "%v", err)
	}
	if _, err := ParseClock(s.WakeTime); err != nil {
		return Invalid("wakeTime", "%v", err)
	}
	if s.Quality < MinQuality || s.Quality > MaxQuality {
		return Invalid("quality", "must be between %d and %d", MinQuality, MaxQuality)
	}
	return nil
}

// SessionInput is what a user submits from the tracker form or CLI.
type SessionInput struct {
	Bedtime  string `json:"bedtime"`
	WakeTime string `json:"wakeTime"`
	Quality  *int   `json:"quality"`
	Notes    string `json:"notes"`
}

// Validate checks the form fields and builds a session logged at now.
// A missing quality falls back to DefaultQuality, like the form slider.
func (in SessionInput) Validate(now time.Time) (SleepSession, error) {
	bed := strings.TrimSpace(in.Bedtime)
	wake := strings.TrimSpace(in.WakeTime)
	if bed == "" || wake == "" {
		return SleepSession{}, Invalid("bedtime", "please enter both bedtime and wake time")
	}
	if _, err := ParseClock(bed); err != nil {
		return SleepSession{}, Invalid("bedtime", "%v", err)
	}
	if _, err := ParseClock(wake); err != nil {
		return SleepSession{}, Invalid("wakeTime", "%v", err)
	}

	quality := DefaultQuality
	if in.Quality != nil {
		quality = *in.Quality
	}
	if quality < MinQuality || quality > MaxQuality {
		return SleepSession{}, Invalid("quality", "must be between %d and %d", MinQuality, MaxQuality)
	}

	return SleepSession{
		Bedtime:  bed,
		WakeTime: wake,
		Quality:  quality,
		Notes:    in.Notes,
		Date:     now.UTC(),
	}, nil
}

// SeedSessions returns a week of demonstration nights ending at now.
func SeedSessions(now time.Time) []SleepSession {
	day := 24 * time.Hour
	seed := []struct {
		bed, wake string
		quality   int
		notes     string
	}{
		{"22:30", "06:45", 8, "Felt refreshed and energetic"},
		{"23:15", "07:00", 6, "Woke up a few times during the night"},
		{"22:00", "06:30", 9, "Best sleep in weeks!"},
		{"23:45", "07:15", 5, "Had trouble falling asleep"},
		{"22:30", "06:45", 7, "Good sleep overall"},
		{"22:15", "06:30", 8, "Followed my routine perfectly"},
		{"23:00", "07:00", 7, "Feeling rested"},
	}

	sessions := make([]SleepSession, len(seed))
	for i, s := range seed {
		sessions[i] = SleepSession{
			ID:       "seed-" + strconv.Itoa(i+1),
			Bedtime:  s.bed,
			WakeTime: s.wake,
			Quality:  s.quality,
			Notes:    s.notes,
			Date:     now.Add(-time.Duration(len(seed)-1-i) * day).UTC(),
		}
	}
	return sessions
}
