package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/LianHaeming/sleepwell/metrics"
	"github.com/LianHaeming/sleepwell/models"
)

// RoutineStore owns the bedtime checklist. Items are addressed by id.
type RoutineStore struct {
	backend Backend
	opts    options
	mu      sync.RWMutex
	items   []models.RoutineItem
}

// NewRoutineStore loads the checklist from b, falling back to the defaults.
func NewRoutineStore(ctx context.Context, b Backend, opts ...Option) (*RoutineStore, error) {
	o := applyOptions(opts)
	items, fell, err := loadRecord(ctx, b, RoutinesKey, o, models.DefaultRoutines)
	if err != nil {
		return nil, fmt.Errorf("load routines: %w", err)
	}
	if fell {
		if err := saveRecord(ctx, b, RoutinesKey, items); err != nil {
			return nil, fmt.Errorf("save routines: %w", err)
		}
	}
	return &RoutineStore{backend: b, opts: o, items: items}, nil
}

// List returns a copy of the checklist in display order.
func (s *RoutineStore) List() []models.RoutineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.RoutineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Add validates name and duration (minutes, as typed) and appends a new
// incomplete item.
func (s *RoutineStore) Add(ctx context.Context, name, duration string) (models.RoutineItem, error) {
	name, mins, err := models.ParseRoutine(name, duration)
	if err != nil {
		return models.RoutineItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := models.RoutineItem{ID: s.opts.newID(), Name: name, Duration: mins}
	next := s.cloneItems()
	next = append(next, item)
	if err := s.commit(ctx, next); err != nil {
		return models.RoutineItem{}, err
	}
	s.opts.recorder.IncRoutineAction(metrics.ActionAdd)
	return item, nil
}

// Toggle flips the completed flag of one item and returns the updated item.
func (s *RoutineStore) Toggle(ctx context.Context, id string) (models.RoutineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.RoutineItem{}, fmt.Errorf("routine %s: %w", id, models.ErrNotFound)
	}
	next := s.cloneItems()
	next[i].Completed = !next[i].Completed
	if err := s.commit(ctx, next); err != nil {
		return models.RoutineItem{}, err
	}
	s.opts.recorder.IncRoutineAction(metrics.ActionToggle)
	return next[i], nil
}

// Delete removes one item.
func (s *RoutineStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("routine %s: %w", id, models.ErrNotFound)
	}
	next := make([]models.RoutineItem, 0, len(s.items)-1)
	next = append(next, s.items[:i]...)
	next = append(next, s.items[i+1:]...)
	if err := s.commit(ctx, next); err != nil {
		return err
	}
	s.opts.recorder.IncRoutineAction(metrics.ActionDelete)
	return nil
}

// Reset marks every item incomplete for tonight.
func (s *RoutineStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cloneItems()
	for i := range next {
		next[i].Completed = false
	}
	if err := s.commit(ctx, next); err != nil {
		return err
	}
	s.opts.recorder.IncRoutineAction(metrics.ActionReset)
	return nil
}

func (s *RoutineStore) commit(ctx context.Context, next []models.RoutineItem) error {
	if err := saveRecord(ctx, s.backend, RoutinesKey, next); err != nil {
		return fmt.Errorf("save routines: %w", err)
	}
	s.items = next
	return nil
}

func (s *RoutineStore) cloneItems() []models.RoutineItem {
	out := make([]models.RoutineItem, len(s.items), len(s.items)+1)
	copy(out, s.items)
	return out
}

func (s *RoutineStore) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}
