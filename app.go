package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/LianHaeming/sleepwell/config"
	"github.com/LianHaeming/sleepwell/metrics"
	"github.com/LianHaeming/sleepwell/storage"
)

// app is the explicit application state: one backend and the two stores it feeds.
type app struct {
	backend  storage.Backend
	sessions *storage.SessionStore
	routines *storage.RoutineStore
}

func openBackend(cfg config.Config) (storage.Backend, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return storage.NewSQLiteBackend(cfg.DatabasePath())
	case config.BackendFile:
		return storage.NewFileBackend(cfg.DataDir)
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func openApp(ctx context.Context, cfg config.Config, rec metrics.Recorder) (*app, error) {
	backend, err := openBackend(cfg)
	if err != nil {
		return nil, err
	}

	opts := []storage.Option{
		storage.WithLogger(slog.Default()),
		storage.WithRecorder(rec),
	}
	sessions, err := storage.NewSessionStore(ctx, backend, opts...)
	if err != nil {
		return nil, errors.Join(err, backend.Close())
	}
	routines, err := storage.NewRoutineStore(ctx, backend, opts...)
	if err != nil {
		return nil, errors.Join(err, backend.Close())
	}

	slog.Debug("Stores ready", "backend", cfg.Backend, "sessions", sessions.Len())
	return &app{backend: backend, sessions: sessions, routines: routines}, nil
}

func (a *app) Close() error {
	return a.backend.Close()
}
