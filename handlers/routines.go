package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// HandleListRoutines returns the bedtime checklist.
func (d *Deps) HandleListRoutines(w http.ResponseWriter, r *http.Request) {
	jsonOK(w, d.Routines.List())
}

// AddRoutineRequest is the JSON body for adding a routine activity.
// Duration may be sent as a number or as the string typed into the form.
type AddRoutineRequest struct {
	Name     string          `json:"name"`
	Duration json.RawMessage `json:"duration"`
}

// HandleAddRoutine appends an activity to the checklist.
func (d *Deps) HandleAddRoutine(w http.ResponseWriter, r *http.Request) {
	var name, duration string
	if isForm(r) {
		name = r.PostFormValue("name")
		duration = r.PostFormValue("duration")
	} else {
		var req AddRoutineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		name = req.Name
		duration = rawToString(req.Duration)
	}

	item, err := d.Routines.Add(r.Context(), name, duration)
	if err != nil {
		d.fail(w, r, err)
		return
	}
	d.logger().Info("Routine added", "routine_id", item.ID, "name", item.Name)

	if isHTMX(r) {
		d.render(w, "partials/routines.html", d.dashboardData())
		return
	}
	jsonStatus(w, http.StatusCreated, item)
}

// HandleToggleRoutine flips an activity's completed flag.
func (d *Deps) HandleToggleRoutine(w http.ResponseWriter, r *http.Request) {
	item, err := d.Routines.Toggle(r.Context(), r.PathValue("routineId"))
	if err != nil {
		d.fail(w, r, err)
		return
	}
	if isHTMX(r) {
		d.render(w, "partials/routines.html", d.dashboardData())
		return
	}
	jsonOK(w, item)
}

// HandleDeleteRoutine removes an activity.
func (d *Deps) HandleDeleteRoutine(w http.ResponseWriter, r *http.Request) {
	if err := d.Routines.Delete(r.Context(), r.PathValue("routineId")); err != nil {
		d.fail(w, r, err)
		return
	}
	if isHTMX(r) {
		d.render(w, "partials/routines.html", d.dashboardData())
		return
	}
	jsonOK(w, map[string]any{"success": true})
}

// HandleResetRoutines clears every completed flag for tonight.
func (d *Deps) HandleResetRoutines(w http.ResponseWriter, r *http.Request) {
	if err := d.Routines.Reset(r.Context()); err != nil {
		d.fail(w, r, err)
		return
	}
	if isHTMX(r) {
		d.render(w, "partials/routines.html", d.dashboardData())
		return
	}
	jsonOK(w, d.Routines.List())
}

// rawToString unwraps a JSON string, or returns a bare literal (a number) as-is.
func rawToString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
