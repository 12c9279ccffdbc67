package tags

import (
	"context"
	"sync"

	"github.com/mp3curate/mp3curate/pkg/errors"
)

// MemoryStore is a Store backed by a map, for dry runs and tests
type MemoryStore struct {
	mu   sync.RWMutex
	tags map[string]Tags
	errs map[string]error
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tags: map[string]Tags{}, errs: map[string]error{}}
}

// Read returns stored tags, or a tag read error for unknown paths
func (m *MemoryStore) Read(ctx context.Context, path string) (Tags, error) {
	if err := ctx.Err(); err != nil {
		return Tags{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err, ok := m.errs[path]; ok {
		return Tags{}, err
	}
	t, ok := m.tags[path]
	if !ok {
		return Tags{}, errors.Newf(errors.ErrTagRead, "no tags for %s", path)
	}
	return t, nil
}

// Write stores tags for path
func (m *MemoryStore) Write(ctx context.Context, path string, t Tags) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tags[path] = t
	return nil
}

// FailRead makes Read of path return err
func (m *MemoryStore) FailRead(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[path] = err
}
