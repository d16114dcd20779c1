package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/scenesmith/scenesmith/pkg/errors"
)

// MemoryStore is an in-process store. Safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	scenes map[string]Scene
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{scenes: make(map[string]Scene)}
}

// Put stores a scene, replacing any existing one with the same name.
func (s *MemoryStore) Put(ctx context.Context, sc Scene) error {
	if sc.Name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "scene has no name")
	}
	sc.UpdatedAt = time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.scenes[sc.Name] = sc
	return nil
}

// Get retrieves a scene by name.
func (s *MemoryStore) Get(ctx context.Context, name string) (Scene, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sc, ok := s.scenes[name]
	if !ok {
		return Scene{}, errors.New(errors.ErrCodeSceneNotFound, "scene %q not found", name)
	}
	return sc, nil
}

// List returns the stored scene names in lexical order.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.scenes))
	for name := range s.scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a scene by name.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.scenes[name]; !ok {
		return errors.New(errors.ErrCodeSceneNotFound, "scene %q not found", name)
	}
	delete(s.scenes, name)
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
