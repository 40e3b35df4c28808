package storage

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LianHaeming/sleepwell/metrics"
	"github.com/LianHaeming/sleepwell/models"
)

var fixedNow = time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)

func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return "id-" + strconv.Itoa(n)
	}
}

func testOpts() []Option {
	return []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(counterIDs()),
	}
}

func session(bed, wake string, quality int, day int) models.SleepSession {
	return models.SleepSession{
		Bedtime:  bed,
		WakeTime: wake,
		Quality:  quality,
		Date:     fixedNow.AddDate(0, 0, day),
	}
}

func TestSessionStoreSeedsWhenMissing(t *testing.T) {
	b := newMemBackend()
	s, err := NewSessionStore(context.Background(), b, testOpts()...)
	require.NoError(t, err)

	assert.Equal(t, models.SeedSessions(fixedNow), s.List())

	var persisted []models.SleepSession
	require.NoError(t, json.Unmarshal(b.records[SessionsKey], &persisted))
	assert.Equal(t, s.List(), persisted, "seed is written back")
}

func TestSessionStoreSeedsWhenCorrupt(t *testing.T) {
	b := newMemBackend()
	b.records[SessionsKey] = []byte(`{not json`)

	reg := prom.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)

	s, err := NewSessionStore(context.Background(), b, append(testOpts(), WithRecorder(rec))...)
	require.NoError(t, err)

	assert.Len(t, s.List(), 7)
	assert.Equal(t, `{not json`, string(b.records[SessionsKey+".corrupt"]))
	n, err := testutil.GatherAndCount(reg, "sleepwell_store_fallbacks_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSessionStoreRejectsInvalidRecords(t *testing.T) {
	tests := []struct {
		name   string
		record string
	}{
		{"null record", `null`},
		{"null item", `[null]`},
		{"empty clocks", `[{"id":"a","bedtime":"","wakeTime":"","quality":7}]`},
		{"unrated", `[{"id":"a","bedtime":"23:00","wakeTime":"07:00","quality":0}]`},
		{"quality above range", `[{"id":"a","bedtime":"23:00","wakeTime":"07:00","quality":11}]`},
		{"object instead of list", `{"id":"a"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newMemBackend()
			b.records[SessionsKey] = []byte(tt.record)

			s, err := NewSessionStore(context.Background(), b, testOpts()...)
			require.NoError(t, err)

			assert.Equal(t, models.SeedSessions(fixedNow), s.List())
			assert.Equal(t, tt.record, string(b.records[SessionsKey+".corrupt"]))
			for _, sess := range s.List() {
				assert.NoError(t, sess.Check())
			}
		})
	}
}

func TestSessionStoreLoadsExisting(t *testing.T) {
	b := newMemBackend()
	b.records[SessionsKey] = []byte(`[]`)

	s, err := NewSessionStore(context.Background(), b, testOpts()...)
	require.NoError(t, err)
	assert.Empty(t, s.List())
	assert.Zero(t, b.puts, "an intact record is not rewritten")
}

func TestSessionStoreAssignsMissingIDs(t *testing.T) {
	b := newMemBackend()
	b.records[SessionsKey] = []byte(`[
		{"bedtime":"23:00","wakeTime":"07:00","quality":7,"notes":"","date":"2025-03-01T07:00:00.000Z"},
		{"id":"keep","bedtime":"22:00","wakeTime":"06:00","quality":8,"notes":"","date":"2025-03-02T07:00:00.000Z"}
	]`)

	s, err := NewSessionStore(context.Background(), b, testOpts()...)
	require.NoError(t, err)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, "id-1", list[0].ID)
	assert.Equal(t, "keep", list[1].ID)
	assert.Equal(t, 1, b.puts)
}

func TestSessionStoreAddAppends(t *testing.T) {
	b := newMemBackend()
	b.records[SessionsKey] = []byte(`[]`)
	ctx := context.Background()
	s, err := NewSessionStore(ctx, b, testOpts()...)
	require.NoError(t, err)

	first, err := s.Add(ctx, session("23:00", "07:00", 8, 0))
	require.NoError(t, err)
	second, err := s.Add(ctx, session("23:00", "07:00", 8, 0))
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, s.Len(), "no dedup")
	got, err := s.Get(second.ID)
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestSessionStoreDeleteAtPreservesOrder(t *testing.T) {
	ctx := context.Background()
	for i := 0; i < 7; i++ {
		s, err := NewSessionStore(ctx, newMemBackend(), testOpts()...)
		require.NoError(t, err)

		before := s.List()
		require.NoError(t, s.DeleteAt(ctx, i))

		want := append(append([]models.SleepSession{}, before[:i]...), before[i+1:]...)
		assert.Equal(t, want, s.List(), "delete index %d", i)
	}
}

func TestSessionStoreDeleteAtOutOfRange(t *testing.T) {
	ctx := context.Background()
	s, err := NewSessionStore(ctx, newMemBackend(), testOpts()...)
	require.NoError(t, err)

	assert.ErrorIs(t, s.DeleteAt(ctx, -1), models.ErrNotFound)
	assert.ErrorIs(t, s.DeleteAt(ctx, 7), models.ErrNotFound)
	assert.Equal(t, 7, s.Len())
}

func TestSessionStoreDeleteByID(t *testing.T) {
	ctx := context.Background()
	s, err := NewSessionStore(ctx, newMemBackend(), testOpts()...)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "seed-3"))
	for _, sess := range s.List() {
		assert.NotEqual(t, "seed-3", sess.ID)
	}
	assert.Equal(t, 6, s.Len())

	assert.ErrorIs(t, s.Delete(ctx, "seed-3"), models.ErrNotFound)
	_, err = s.Get("seed-3")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSessionStoreFailedSaveKeepsState(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend()
	s, err := NewSessionStore(ctx, b, testOpts()...)
	require.NoError(t, err)
	before := s.List()

	b.failPut = errDiskFull
	_, err = s.Add(ctx, session("23:00", "07:00", 5, 1))
	require.ErrorIs(t, err, errDiskFull)
	require.ErrorIs(t, s.Delete(ctx, "seed-1"), errDiskFull)

	assert.Equal(t, before, s.List())
}

func TestSessionStoreRoundTrip(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s, err := NewSessionStore(ctx, b, testOpts()...)
			require.NoError(t, err)

			_, err = s.Add(ctx, models.SleepSession{
				Bedtime:  "01:30",
				WakeTime: "09:00",
				Quality:  3,
				Notes:    "late night, \"quotes\" and ünïcode",
				Date:     fixedNow.Add(1500 * time.Millisecond),
			})
			require.NoError(t, err)
			require.NoError(t, s.DeleteAt(ctx, 0))

			reloaded, err := NewSessionStore(ctx, b, testOpts()...)
			require.NoError(t, err)
			assert.Equal(t, s.List(), reloaded.List())
		})
	}
}
