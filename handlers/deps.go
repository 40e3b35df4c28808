package handlers

import (
	"log/slog"
	"time"

	"github.com/LianHaeming/sleepwell/storage"
	"github.com/LianHaeming/sleepwell/tmpl"
)

// Deps holds all handler dependencies.
type Deps struct {
	Sessions  *storage.SessionStore
	Routines  *storage.RoutineStore
	Templates *tmpl.Templates
	Logger    *slog.Logger
	Now       func() time.Time
}

func (d *Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d *Deps) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}
