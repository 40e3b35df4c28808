package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionInputValidate(t *testing.T) {
	q := 9
	s, err := SessionInput{Bedtime: " 23:00", WakeTime: "07:00 ", Quality: &q, Notes: "ok"}.Validate(testNow)
	require.NoError(t, err)
	assert.Equal(t, "23:00", s.Bedtime)
	assert.Equal(t, "07:00", s.WakeTime)
	assert.Equal(t, 9, s.Quality)
	assert.Equal(t, "ok", s.Notes)
	assert.True(t, s.Date.Equal(testNow))
	assert.Empty(t, s.ID, "ids are assigned by the store")
}

func TestSessionInputDefaultsQuality(t *testing.T) {
	s, err := SessionInput{Bedtime: "23:00", WakeTime: "07:00"}.Validate(testNow)
	require.NoError(t, err)
	assert.Equal(t, DefaultQuality, s.Quality)
}

func TestSessionInputRejects(t *testing.T) {
	zero, eleven := 0, 11
	tests := []struct {
		name  string
		in    SessionInput
		field string
	}{
		{"missing bedtime", SessionInput{WakeTime: "07:00"}, "bedtime"},
		{"missing wake", SessionInput{Bedtime: "23:00"}, "bedtime"},
		{"bad wake", SessionInput{Bedtime: "23:00", WakeTime: "7am"}, "wakeTime"},
		{"quality low", SessionInput{Bedtime: "23:00", WakeTime: "07:00", Quality: &zero}, "quality"},
		{"quality high", SessionInput{Bedtime: "23:00", WakeTime: "07:00", Quality: &eleven}, "quality"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.in.Validate(testNow)
			require.Error(t, err)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestSessionJSONShape(t *testing.T) {
	raw := `{"bedtime":"22:30","wakeTime":"06:45","quality":8,"notes":"Felt refreshed","date":"2025-03-04T08:00:00.000Z"}`

	var s SleepSession
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	assert.Equal(t, "22:30", s.Bedtime)
	assert.Equal(t, 8, s.Quality)
	assert.Equal(t, "Mar 4", s.Date.Format(ShortDateLayout))
	assert.Equal(t, "8h 15m", FormatDuration(s.Duration()))
	assert.Equal(t, TierExcellent, s.Tier())

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.NotContains(t, string(out), `"id"`)
	assert.Contains(t, string(out), `"wakeTime":"06:45"`)
}

func TestSeedSessions(t *testing.T) {
	seed := SeedSessions(testNow)
	require.Len(t, seed, 7)
	assert.True(t, seed[6].Date.Equal(testNow))
	assert.True(t, seed[0].Date.Equal(testNow.AddDate(0, 0, -6)))

	ids := map[string]bool{}
	for _, s := range seed {
		assert.NotEmpty(t, s.ID)
		ids[s.ID] = true
	}
	assert.Len(t, ids, 7)
}

func TestParseRoutine(t *testing.T) {
	name, mins, err := ParseRoutine(" Read ", "20")
	require.NoError(t, err)
	assert.Equal(t, "Read", name)
	assert.Equal(t, 20, mins)

	for _, tc := range [][2]string{{"", "10"}, {"  ", "10"}, {"Read", ""}, {"Read", "ten"}, {"Read", "0"}, {"Read", "-5"}} {
		_, _, err := ParseRoutine(tc[0], tc[1])
		assert.True(t, IsValidation(err), "%q %q", tc[0], tc[1])
	}
}

func TestRoutineTotals(t *testing.T) {
	items := DefaultRoutines()
	items[1].Completed = true
	total, done := RoutineTotals(items)
	assert.Equal(t, 45, total)
	assert.Equal(t, 1, done)
}

func TestStoredItemCheck(t *testing.T) {
	for _, s := range SeedSessions(testNow) {
		assert.NoError(t, s.Check(), s.ID)
	}
	for _, r := range DefaultRoutines() {
		assert.NoError(t, r.Check(), r.ID)
	}

	assert.True(t, IsValidation(SleepSession{}.Check()))
	assert.True(t, IsValidation(SleepSession{Bedtime: "23:00", WakeTime: "07:00", Quality: 0}.Check()))
	assert.True(t, IsValidation(SleepSession{Bedtime: "23:00", WakeTime: "7am", Quality: 7}.Check()))
	assert.True(t, IsValidation(RoutineItem{}.Check()))
	assert.True(t, IsValidation(RoutineItem{ID: "1", Name: "Read"}.Check()))
}
