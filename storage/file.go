package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileBackend keeps each record in its own JSON file under a root directory.
type FileBackend struct {
	root string
	mu   sync.RWMutex
}

// NewFileBackend creates the root directory if needed.
func NewFileBackend(root string) (*FileBackend, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileBackend{root: root}, nil
}

func (b *FileBackend) recordPath(key string) string {
	return filepath.Join(b.root, key+".json")
}

// Get reads a record, or ErrRecordNotFound if its file doesn't exist.
func (b *FileBackend) Get(_ context.Context, key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, err := os.ReadFile(b.recordPath(key))
	if os.IsNotExist(err) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read record %s: %w", key, err)
	}
	return data, nil
}

// Put replaces a record. The file is written to a temp name and renamed so a
// crash never leaves a half-written record behind.
func (b *FileBackend) Put(_ context.Context, key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	tmp, err := os.CreateTemp(b.root, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("write record %s: %w", key, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write record %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write record %s: %w", key, err)
	}
	if err := os.Rename(tmpName, b.recordPath(key)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write record %s: %w", key, err)
	}
	return nil
}

// Close is a no-op; files are not held open.
func (b *FileBackend) Close() error { return nil }
