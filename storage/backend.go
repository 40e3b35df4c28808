package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Record keys. They match the keys the browser version kept in local storage.
const (
	SessionsKey = "sleepData"
	RoutinesKey = "bedtimeRoutines"
)

// ErrRecordNotFound is returned by Backend.Get for a key that was never written.
var ErrRecordNotFound = errors.New("record not found")

// Backend is a durable string-keyed record store. Each record is an opaque
// serialized value, written whole.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

func checkKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return fmt.Errorf("invalid record key %q", key)
	}
	return nil
}
