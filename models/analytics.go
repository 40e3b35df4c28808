package models

// RecentWindow is how many nights the charts show.
const RecentWindow = 7

// ShortDateLayout is the chart axis date format ("Jan 2").
const ShortDateLayout = "Jan 2"

// ChartPoint is one night in the recent series.
type ChartPoint struct {
	Date     string  `json:"date"`
	Duration float64 `json:"duration"` // hours, one decimal
	Quality  int     `json:"quality"`
	Tier     string  `json:"tier"`
	Color    string  `json:"color"`
}

// Summary is the analytics view over all sessions.
type Summary struct {
	AvgDurationHours float64        `json:"avgDurationHours"`
	AvgDuration      string         `json:"avgDuration"`
	AvgQuality       float64        `json:"avgQuality"`
	TotalNights      int            `json:"totalNights"`
	Recent           []ChartPoint   `json:"recent"`
	TierCounts       map[string]int `json:"tierCounts"` // over Recent
}

// AverageDuration returns the mean sleep duration in hours, or 0 for no sessions.
func AverageDuration(sessions []SleepSession) float64 {
	if len(sessions) == 0 {
		return 0
	}
	var total float64
	for _, s := range sessions {
		total += Hours(s.Duration())
	}
	return total / float64(len(sessions))
}

// AverageQuality returns the mean quality, or 0 for no sessions.
func AverageQuality(sessions []SleepSession) float64 {
	if len(sessions) == 0 {
		return 0
	}
	total := 0
	for _, s := range sessions {
		total += s.Quality
	}
	return float64(total) / float64(len(sessions))
}

// RecentSessions returns the last n sessions, oldest first. The input is in
// insertion order, so this is a tail slice copy.
func RecentSessions(sessions []SleepSession, n int) []SleepSession {
	if n <= 0 {
		return nil
	}
	start := len(sessions) - n
	if start < 0 {
		start = 0
	}
	out := make([]SleepSession, len(sessions)-start)
	copy(out, sessions[start:])
	return out
}

// RecentSeries builds chart points for the last n sessions, oldest first.
func RecentSeries(sessions []SleepSession, n int) []ChartPoint {
	recent := RecentSessions(sessions, n)
	points := make([]ChartPoint, len(recent))
	for i, s := range recent {
		tier := s.Tier()
		points[i] = ChartPoint{
			Date:     s.Date.Local().Format(ShortDateLayout),
			Duration: RoundTenth(Hours(s.Duration())),
			Quality:  s.Quality,
			Tier:     string(tier),
			Color:    tier.Color(),
		}
	}
	return points
}

// TierCounts counts sessions per quality tier. Every tier has an entry.
func TierCounts(sessions []SleepSession) map[string]int {
	counts := make(map[string]int, len(Tiers))
	for _, t := range Tiers {
		counts[string(t)] = 0
	}
	for _, s := range sessions {
		counts[string(s.Tier())]++
	}
	return counts
}

// Summarize computes the full analytics view. Averages cover every session;
// the series and tier counts cover the recent window.
func Summarize(sessions []SleepSession) Summary {
	avg := AverageDuration(sessions)
	return Summary{
		AvgDurationHours: avg,
		AvgDuration:      FormatDuration(hoursToDuration(avg)),
		AvgQuality:       AverageQuality(sessions),
		TotalNights:      len(sessions),
		Recent:           RecentSeries(sessions, RecentWindow),
		TierCounts:       TierCounts(RecentSessions(sessions, RecentWindow)),
	}
}
