package devauth

import (
	"context"
	"strings"
	"sync"
)

// UserRepository stores dev server accounts.
type UserRepository interface {
	Create(ctx context.Context, user *User) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// BillRepository stores seeded demo bills per user.
type BillRepository interface {
	// SeedOnce stores bills for userID unless the user already has some. It
	// reports whether bills were stored.
	SeedOnce(ctx context.Context, userID string, bills []Bill) (bool, error)
	List(ctx context.Context, userID string) ([]Bill, error)
}

// MemoryStore keeps users and bills in process memory. Emails are matched
// case-insensitively.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]User
	bills map[string][]Bill
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]User),
		bills: make(map[string][]Bill),
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *MemoryStore) Create(_ context.Context, user *User) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := emailKey(user.Email)
	if _, exists := s.users[key]; exists {
		return nil, ErrUserExists
	}
	s.users[key] = *user
	created := *user
	return &created, nil
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[emailKey(email)]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (s *MemoryStore) SeedOnce(_ context.Context, userID string, bills []Bill) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.bills[userID]) > 0 {
		return false, nil
	}
	s.bills[userID] = append([]Bill(nil), bills...)
	return true, nil
}

func (s *MemoryStore) List(_ context.Context, userID string) ([]Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Bill(nil), s.bills[userID]...), nil
}
