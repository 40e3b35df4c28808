package handlers

import (
	"net/http"

	"github.com/LianHaeming/sleepwell/models"
)

// RoutineProgress summarizes tonight's checklist.
type RoutineProgress struct {
	Count          int `json:"count"`
	CompletedCount int `json:"completedCount"`
	TotalMinutes   int `json:"totalMinutes"`
}

// AnalyticsResponse is the JSON body for GET /api/analytics.
type AnalyticsResponse struct {
	models.Summary
	Routines RoutineProgress `json:"routines"`
}

// HandleAnalytics returns averages, the recent chart series and checklist progress.
func (d *Deps) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	routines := d.Routines.List()
	total, done := models.RoutineTotals(routines)

	jsonOK(w, AnalyticsResponse{
		Summary: models.Summarize(d.Sessions.List()),
		Routines: RoutineProgress{
			Count:          len(routines),
			CompletedCount: done,
			TotalMinutes:   total,
		},
	})
}
