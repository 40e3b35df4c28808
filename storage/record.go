package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/LianHaeming/sleepwell/metrics"
)

// Option configures a SessionStore or RoutineStore.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	recorder metrics.Recorder
	now      func() time.Time
	newID    func() string
}

func defaultOptions() options {
	return options{
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger used for load warnings.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator overrides the UUID generator.
func WithIDGenerator(gen func() string) Option {
	return func(o *options) { o.newID = gen }
}

// checker is a stored item that can vouch for its own fields.
type checker interface {
	Check() error
}

// loadRecord decodes the record at key. A missing or invalid record is
// replaced with seed(); fell reports whether that happened so the caller
// writes the seed back. Backend read failures are returned as errors.
func loadRecord[T checker](ctx context.Context, b Backend, key string, o options, seed func() []T) (items []T, fell bool, err error) {
	data, err := b.Get(ctx, key)
	if errors.Is(err, ErrRecordNotFound) {
		o.logger.Info("No stored record, using defaults", "record", key)
		o.recorder.IncStoreFallback(key, metrics.ReasonMissing)
		return seed(), true, nil
	}
	if err != nil {
		return nil, false, err
	}

	items, err = decodeRecord[T](data)
	if err != nil {
		o.logger.Warn("Invalid stored record, using defaults", "record", key, "error", err)
		o.recorder.IncStoreFallback(key, metrics.ReasonCorrupt)
		if perr := b.Put(ctx, key+".corrupt", data); perr != nil {
			o.logger.Warn("Could not keep copy of invalid record", "record", key, "error", perr)
		}
		return seed(), true, nil
	}
	return items, false, nil
}

// decodeRecord parses a JSON array of items. A null record or an item that
// fails Check makes the whole record invalid.
func decodeRecord[T checker](data []byte) ([]T, error) {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	if items == nil {
		return nil, errors.New("record is null")
	}
	for i, item := range items {
		if err := item.Check(); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}
	return items, nil
}

func saveRecord[T any](ctx context.Context, b Backend, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return b.Put(ctx, key, data)
}
