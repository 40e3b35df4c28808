package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/LianHaeming/sleepwell/models"
)

// SessionStore owns the logged sleep sessions in insertion order and writes
// the whole list back to its Backend after every accepted change.
type SessionStore struct {
	backend  Backend
	opts     options
	mu       sync.RWMutex
	sessions []models.SleepSession
}

// NewSessionStore loads sessions from b, falling back to seed data.
func NewSessionStore(ctx context.Context, b Backend, opts ...Option) (*SessionStore, error) {
	o := applyOptions(opts)
	sessions, fell, err := loadRecord(ctx, b, SessionsKey, o, func() []models.SleepSession {
		return models.SeedSessions(o.now())
	})
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	// Records from older versions carry no ids; give them one so deletes
	// never depend on list position.
	missingIDs := false
	for i := range sessions {
		if sessions[i].ID == "" {
			sessions[i].ID = o.newID()
			missingIDs = true
		}
	}

	s := &SessionStore{backend: b, opts: o, sessions: sessions}
	if fell || missingIDs {
		if err := saveRecord(ctx, b, SessionsKey, sessions); err != nil {
			return nil, fmt.Errorf("save sessions: %w", err)
		}
	}
	o.recorder.SetSessionCount(len(sessions))
	return s, nil
}

// List returns a copy of all sessions, oldest logged first.
func (s *SessionStore) List() []models.SleepSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.SleepSession, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// Len returns the number of stored sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Get returns the session with the given id.
func (s *SessionStore) Get(id string) (models.SleepSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.sessions[i], nil
	}
	return models.SleepSession{}, fmt.Errorf("session %s: %w", id, models.ErrNotFound)
}

// Add appends a session, assigning an id if it has none. No dedup is done.
func (s *SessionStore) Add(ctx context.Context, session models.SleepSession) (models.SleepSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session.ID == "" {
		session.ID = s.opts.newID()
	}
	next := make([]models.SleepSession, len(s.sessions), len(s.sessions)+1)
	copy(next, s.sessions)
	next = append(next, session)

	if err := s.commit(ctx, next); err != nil {
		return models.SleepSession{}, err
	}
	s.opts.recorder.IncSessionLogged()
	return session, nil
}

// Delete removes the session with the given id.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("session %s: %w", id, models.ErrNotFound)
	}
	return s.removeAt(ctx, i)
}

// DeleteAt removes the session at index i of List's order. Callers showing
// sessions newest first must map their view index back to this order.
func (s *SessionStore) DeleteAt(ctx context.Context, i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.sessions) {
		return fmt.Errorf("session index %d: %w", i, models.ErrNotFound)
	}
	return s.removeAt(ctx, i)
}

func (s *SessionStore) removeAt(ctx context.Context, i int) error {
	next := make([]models.SleepSession, 0, len(s.sessions)-1)
	next = append(next, s.sessions[:i]...)
	next = append(next, s.sessions[i+1:]...)

	if err := s.commit(ctx, next); err != nil {
		return err
	}
	s.opts.recorder.IncSessionDeleted()
	return nil
}

// commit persists next and only then makes it the current list.
func (s *SessionStore) commit(ctx context.Context, next []models.SleepSession) error {
	if err := saveRecord(ctx, s.backend, SessionsKey, next); err != nil {
		return fmt.Errorf("save sessions: %w", err)
	}
	s.sessions = next
	s.opts.recorder.SetSessionCount(len(next))
	return nil
}

func (s *SessionStore) indexOf(id string) int {
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			return i
		}
	}
	return -1
}
