package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/LianHaeming/sleepwell/models"
)

func jsonOK(w http.ResponseWriter, data any) {
	jsonStatus(w, http.StatusOK, data)
}

func jsonStatus(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	jsonStatus(w, code, map[string]string{"error": msg})
}

// fail maps store and validation errors to a status code.
func (d *Deps) fail(w http.ResponseWriter, r *http.Request, err error) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		jsonError(w, ve.Message, http.StatusBadRequest)
	case errors.Is(err, models.ErrNotFound):
		jsonError(w, "Not found", http.StatusNotFound)
	default:
		d.logger().Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		jsonError(w, "Internal error", http.StatusInternalServerError)
	}
}

// isHTMX reports whether the request came from an htmx swap and wants a partial back.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

func (d *Deps) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := d.Templates.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}
