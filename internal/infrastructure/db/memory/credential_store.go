// Package memory provides a process-local credential store. The mirror does
// not survive a restart, so it only suits development and tests.
package memory

import (
	"context"
	"sync"
)

type CredentialStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewCredentialStore() *CredentialStore {
	return &CredentialStore{values: make(map[string]string)}
}

func (s *CredentialStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *CredentialStore) Write(_ context.Context, set map[string]string, clear ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range clear {
		delete(s.values, k)
	}
	for k, v := range set {
		s.values[k] = v
	}
	return nil
}

func (s *CredentialStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.values, k)
	}
	return nil
}

func (s *CredentialStore) Ping(context.Context) error { return nil }
