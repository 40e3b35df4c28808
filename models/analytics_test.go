package models

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)

// Display helpers format in time.Local; pin it so dates don't depend on the host.
func TestMain(m *testing.M) {
	time.Local = time.UTC
	os.Exit(m.Run())
}

func withLocal(t *testing.T, loc *time.Location) {
	t.Helper()
	prev := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = prev })
}

func TestAveragesEmpty(t *testing.T) {
	assert.Zero(t, AverageDuration(nil))
	assert.Zero(t, AverageQuality(nil))

	s := Summarize([]SleepSession{})
	assert.Zero(t, s.TotalNights)
	assert.Zero(t, s.AvgQuality)
	assert.Equal(t, "0h 0m", s.AvgDuration)
	assert.Empty(t, s.Recent)
}

func TestAverageQualitySeed(t *testing.T) {
	sessions := SeedSessions(testNow)
	var qualities []int
	for _, s := range sessions {
		qualities = append(qualities, s.Quality)
	}
	require.Equal(t, []int{8, 6, 9, 5, 7, 8, 7}, qualities)

	assert.InDelta(t, 50.0/7.0, AverageQuality(sessions), 1e-9)
}

func TestAverageDuration(t *testing.T) {
	sessions := []SleepSession{
		{Bedtime: "23:00", WakeTime: "07:00", Quality: 7},
		{Bedtime: "22:00", WakeTime: "07:00", Quality: 7},
	}
	assert.InDelta(t, 8.5, AverageDuration(sessions), 1e-9)
	assert.Equal(t, "8h 30m", Summarize(sessions).AvgDuration)
}

func TestAverageDurationCountsBadClocksAsZero(t *testing.T) {
	sessions := []SleepSession{
		{Bedtime: "23:00", WakeTime: "07:00"},
		{Bedtime: "bogus", WakeTime: "07:00"},
	}
	assert.InDelta(t, 4.0, AverageDuration(sessions), 1e-9)
}

func TestRecentSeriesOldestFirst(t *testing.T) {
	var sessions []SleepSession
	for i := 0; i < 10; i++ {
		sessions = append(sessions, SleepSession{
			Bedtime:  "23:00",
			WakeTime: "07:20",
			Quality:  i%10 + 1,
			Date:     testNow.AddDate(0, 0, i),
		})
	}

	points := RecentSeries(sessions, RecentWindow)
	require.Len(t, points, RecentWindow)
	assert.Equal(t, "Mar 13", points[0].Date)
	assert.Equal(t, "Mar 19", points[6].Date)
	assert.Equal(t, 4, points[0].Quality)
	assert.Equal(t, 10, points[6].Quality)
	assert.Equal(t, 8.3, points[0].Duration)
	assert.Equal(t, string(TierExcellent), points[6].Tier)
	assert.Equal(t, "#10b981", points[6].Color)
}

func TestRecentSessionsShortList(t *testing.T) {
	sessions := SeedSessions(testNow)[:3]
	got := RecentSessions(sessions, RecentWindow)
	assert.Equal(t, sessions, got)

	got[0].Notes = "changed"
	assert.NotEqual(t, "changed", sessions[0].Notes, "result must not alias input")
	assert.Nil(t, RecentSessions(sessions, 0))
}

func TestSummarizeTierCounts(t *testing.T) {
	s := Summarize(SeedSessions(testNow))
	assert.Equal(t, 7, s.TotalNights)
	assert.Equal(t, map[string]int{
		"excellent": 3,
		"good":      3,
		"fair":      1,
		"poor":      0,
	}, s.TierCounts)
}

func TestSummarizeTierCountsCoverRecentWindow(t *testing.T) {
	var sessions []SleepSession
	for i := 0; i < 3; i++ {
		sessions = append(sessions, SleepSession{Bedtime: "02:00", WakeTime: "05:00", Quality: 2})
	}
	for i := 0; i < RecentWindow; i++ {
		sessions = append(sessions, SleepSession{Bedtime: "22:00", WakeTime: "06:00", Quality: 9})
	}

	s := Summarize(sessions)
	assert.Equal(t, 10, s.TotalNights)
	assert.Equal(t, map[string]int{"excellent": 7, "good": 0, "fair": 0, "poor": 0}, s.TierCounts)
	assert.InDelta(t, (3*2+7*9)/10.0, s.AvgQuality, 1e-9, "averages still cover every night")
}

func TestRecentSeriesUsesLocalDate(t *testing.T) {
	withLocal(t, time.FixedZone("PDT", -7*60*60))

	// 21:00 on Mar 9 in PDT, already Mar 10 in UTC.
	logged := time.Date(2025, time.March, 10, 4, 0, 0, 0, time.UTC)
	points := RecentSeries([]SleepSession{{Bedtime: "22:00", WakeTime: "06:00", Quality: 7, Date: logged}}, RecentWindow)
	require.Len(t, points, 1)
	assert.Equal(t, "Mar 9", points[0].Date)
}

func TestTier(t *testing.T) {
	tests := map[int]QualityTier{
		10: TierExcellent,
		8:  TierExcellent,
		7:  TierGood,
		6:  TierGood,
		5:  TierFair,
		4:  TierFair,
		3:  TierPoor,
		1:  TierPoor,
	}
	for q, want := range tests {
		assert.Equal(t, want, Tier(q), "quality %d", q)
	}
	assert.Equal(t, "Excellent", TierExcellent.Label())
	assert.Equal(t, "#ef4444", QualityColor(2))
	assert.Equal(t, "#9ca3af", QualityTier("unknown").Color())
}
