package models

import (
	"strconv"
	"strings"
)

// RoutineItem is one bedtime checklist activity.
type RoutineItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Duration  int    `json:"duration"` // minutes
	Completed bool   `json:"completed"`
}

// Check reports whether a stored item can be shown and toggled.
func (r RoutineItem) Check() error {
	if r.ID == "" {
		return Invalid("id", "missing id")
	}
	if strings.TrimSpace(r.Name) == "" {
		return Invalid("name", "missing name")
	}
	if r.Duration <= 0 {
		return Invalid("duration", "must be at least 1 minute")
	}
	return nil
}

// DefaultRoutines returns the checklist used when nothing is stored yet.
func DefaultRoutines() []RoutineItem {
	return []RoutineItem{
		{ID: "1", Name: "Read a book", Duration: 20},
		{ID: "2", Name: "Meditation", Duration: 10},
		{ID: "3", Name: "Prepare tomorrow's clothes", Duration: 5},
		{ID: "4", Name: "Light stretching", Duration: 10},
	}
}

// ParseRoutine validates a name and a minutes string from the add dialog.
func ParseRoutine(name, duration string) (string, int, error) {
	name = strings.TrimSpace(name)
	duration = strings.TrimSpace(duration)
	if name == "" || duration == "" {
		return "", 0, Invalid("name", "please enter routine name and duration")
	}
	mins, err := strconv.Atoi(duration)
	if err != nil {
		return "", 0, Invalid("duration", "%q is not a whole number of minutes", duration)
	}
	if mins <= 0 {
		return "", 0, Invalid("duration", "must be at least 1 minute")
	}
	return name, mins, nil
}

// RoutineTotals sums planned minutes and counts completed items.
func RoutineTotals(items []RoutineItem) (totalMinutes, completed int) {
	for _, r := range items {
		totalMinutes += r.Duration
		if r.Completed {
			completed++
		}
	}
	return totalMinutes, completed
}
