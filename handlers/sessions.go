package handlers

import (
	"encoding/json"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/LianHaeming/sleepwell/models"
)

// sessionsChangedEvent tells the dashboard's analytics card to reload.
const sessionsChangedEvent = "sessions-changed"

// HandleListSessions returns all sessions. ?order=desc lists newest first,
// the way the history view shows them.
func (d *Deps) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions := d.Sessions.List()
	if r.URL.Query().Get("order") == "desc" {
		slices.Reverse(sessions)
	}
	jsonOK(w, sessions)
}

// HandleAddSession logs a sleep session from a JSON body or a submitted form.
func (d *Deps) HandleAddSession(w http.ResponseWriter, r *http.Request) {
	in, err := decodeSessionInput(r)
	if err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session, err := in.Validate(d.now())
	if err != nil {
		d.fail(w, r, err)
		return
	}

	saved, err := d.Sessions.Add(r.Context(), session)
	if err != nil {
		d.fail(w, r, err)
		return
	}
	d.logger().Info("Sleep session logged", "session_id", saved.ID, "duration", models.FormatDuration(saved.Duration()))
	if isHTMX(r) {
		// Every dashboard card depends on the session list.
		w.Header().Set("HX-Refresh", "true")
	}
	jsonStatus(w, http.StatusCreated, saved)
}

// HandleDeleteSession deletes a session by id.
func (d *Deps) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("sessionId")

	if err := d.Sessions.Delete(r.Context(), id); err != nil {
		d.fail(w, r, err)
		return
	}

	if isHTMX(r) {
		w.Header().Set("HX-Trigger", sessionsChangedEvent)
		d.render(w, "partials/history.html", d.dashboardData())
		return
	}
	jsonOK(w, map[string]any{"success": true})
}

// DurationPreview is the template data for the tracker form's duration line.
type DurationPreview struct {
	Duration time.Duration
	Valid    bool
}

// HandleDuration previews the duration for a bedtime/wake pair. htmx callers
// get the form's preview line, empty until both times parse.
func (d *Deps) HandleDuration(w http.ResponseWriter, r *http.Request) {
	bed := r.URL.Query().Get("bedtime")
	wake := r.URL.Query().Get("wakeTime")

	if isHTMX(r) {
		dur, err := models.SleepDuration(bed, wake)
		d.render(w, "partials/duration.html", DurationPreview{Duration: dur, Valid: err == nil})
		return
	}

	if bed == "" || wake == "" {
		jsonError(w, "Missing required query params (bedtime, wakeTime)", http.StatusBadRequest)
		return
	}
	dur, err := models.SleepDuration(bed, wake)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	hours, minutes := models.SplitDuration(dur)
	jsonOK(w, map[string]any{
		"duration": models.FormatDuration(dur),
		"hours":    hours,
		"minutes":  minutes,
		"decimal":  models.RoundTenth(models.Hours(dur)),
	})
}

func decodeSessionInput(r *http.Request) (models.SessionInput, error) {
	var in models.SessionInput
	if isForm(r) {
		if err := r.ParseForm(); err != nil {
			return in, err
		}
		in.Bedtime = r.PostFormValue("bedtime")
		in.WakeTime = r.PostFormValue("wakeTime")
		in.Notes = r.PostFormValue("notes")
		if q := r.PostFormValue("quality"); q != "" {
			n, err := strconv.Atoi(q)
			if err != nil {
				return in, err
			}
			in.Quality = &n
		}
		return in, nil
	}
	err := json.NewDecoder(r.Body).Decode(&in)
	return in, err
}

func isForm(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(ct, "multipart/form-data")
}
