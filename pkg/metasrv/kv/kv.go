// Package kv provides the key-value stores backing metadata server state.
package kv

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"sync"
)

// ErrNotFound is returned by [Store.Get] for a missing key.
var ErrNotFound = errors.New("key not found")

// KeyValue is a stored entry.
type KeyValue struct {
	Key   []byte
	Value []byte
}

// Store is an ordered key-value store. Implementations are safe for
// concurrent use.
type Store interface {
	// Put creates or replaces the value of key.
	Put(ctx context.Context, key, value []byte) error
	// Get returns the value of key, or ErrNotFound.
	Get(ctx context.Context, key []byte) ([]byte, error)
	// Range returns all entries whose key starts with prefix, in key order.
	Range(ctx context.Context, prefix []byte) ([]KeyValue, error)
}

// MemStore is an in-memory [Store].
type MemStore struct {
	mtx     sync.RWMutex
	entries map[string][]byte
}

var _ Store = (*MemStore)(nil)

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{entries: make(map[string][]byte)}
}

// Put implements Store.
func (s *MemStore) Put(_ context.Context, key, value []byte) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.entries[string(key)] = bytes.Clone(value)
	return nil
}

// Get implements Store.
func (s *MemStore) Get(_ context.Context, key []byte) ([]byte, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	value, ok := s.entries[string(key)]
	if !ok {
		return nil, ErrNotFound
	}
	return bytes.Clone(value), nil
}

// Range implements Store.
func (s *MemStore) Range(_ context.Context, prefix []byte) ([]KeyValue, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var kvs []KeyValue
	for key, value := range s.entries {
		if bytes.HasPrefix([]byte(key), prefix) {
			kvs = append(kvs, KeyValue{Key: []byte(key), Value: bytes.Clone(value)})
		}
	}
	sort.Slice(kvs, func(i, j int) bool { return bytes.Compare(kvs[i].Key, kvs[j].Key) < 0 })
	return kvs, nil
}
