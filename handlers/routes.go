package handlers

import "net/http"

// Register mounts the dashboard and API routes on mux.
func (d *Deps) Register(mux *http.ServeMux) {
	// Pages
	mux.HandleFunc("GET /", d.HandleDashboard)
	mux.HandleFunc("GET /partials/analytics", d.HandleAnalyticsPartial)

	// Sessions
	mux.HandleFunc("GET /api/sessions", d.HandleListSessions)
	mux.HandleFunc("POST /api/sessions", d.HandleAddSession)
	mux.HandleFunc("DELETE /api/sessions/{sessionId}", d.HandleDeleteSession)
	mux.HandleFunc("GET /api/duration", d.HandleDuration)

	// Routines
	mux.HandleFunc("GET /api/routines", d.HandleListRoutines)
	mux.HandleFunc("POST /api/routines", d.HandleAddRoutine)
	mux.HandleFunc("POST /api/routines/reset", d.HandleResetRoutines)
	mux.HandleFunc("POST /api/routines/{routineId}/toggle", d.HandleToggleRoutine)
	mux.HandleFunc("DELETE /api/routines/{routineId}", d.HandleDeleteRoutine)

	// Analytics
	mux.HandleFunc("GET /api/analytics", d.HandleAnalytics)
}
