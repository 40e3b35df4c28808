package handlers

import (
	"net/http"
	"slices"

	"github.com/LianHaeming/sleepwell/models"
)

// DashboardData is the template data for the dashboard and its partials.
type DashboardData struct {
	Sessions       []models.SleepSession // newest first
	Routines       []models.RoutineItem
	Summary        models.Summary
	TotalMinutes   int
	CompletedCount int
}

// HandleDashboard renders the tracker, routine, analytics and history views.
func (d *Deps) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	d.render(w, "dashboard.html", d.dashboardData())
}

// HandleAnalyticsPartial re-renders the analytics card after the session list changes.
func (d *Deps) HandleAnalyticsPartial(w http.ResponseWriter, r *http.Request) {
	d.render(w, "partials/analytics.html", d.dashboardData())
}

func (d *Deps) dashboardData() DashboardData {
	sessions := d.Sessions.List()
	summary := models.Summarize(sessions)
	slices.Reverse(sessions)

	routines := d.Routines.List()
	total, done := models.RoutineTotals(routines)
	return DashboardData{
		Sessions:       sessions,
		Routines:       routines,
		Summary:        summary,
		TotalMinutes:   total,
		CompletedCount: done,
	}
}
