package hashsrc

import (
	"context"
	"path"
	"sort"
	"sync"

	"github.com/kailas-cloud/tagsim/internal/db"
)

// memStore is an in-memory implementation of the store interface.
type memStore struct {
	mu      sync.Mutex
	hashes  map[string]map[string]string
	scanErr error
	setErr  error
	getErr  error
	setCall int
}

func newMemStore() *memStore {
	return &memStore{hashes: make(map[string]map[string]string)}
}

func (m *memStore) HSetMulti(_ context.Context, items []db.HashSetItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCall++
	if m.setErr != nil {
		return m.setErr
	}
	for _, it := range items {
		h, ok := m.hashes[it.Key]
		if !ok {
			h = make(map[string]string)
			m.hashes[it.Key] = h
		}
		for k, v := range it.Fields {
			h[k] = v
		}
	}
	return nil
}

func (m *memStore) HGetAllMulti(_ context.Context, keys []string) ([]map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	out := make([]map[string]string, len(keys))
	for i, k := range keys {
		h := make(map[string]string, len(m.hashes[k]))
		for f, v := range m.hashes[k] {
			h[f] = v
		}
		out[i] = h
	}
	return out, nil
}

func (m *memStore) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.hashes, k)
	}
	return nil
}

func (m *memStore) Scan(_ context.Context, pattern string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.scanErr != nil {
		return nil, m.scanErr
	}
	var keys []string
	for k := range m.hashes {
		if ok, _ := path.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}
	// Real SCAN order is arbitrary; reverse-sort so Load cannot rely on it.
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys, nil
}
