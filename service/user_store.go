package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// UserStore is an interface to store users.
type UserStore interface {
	// GetAll returns a snapshot of all stored users.
	GetAll(ctx context.Context) ([]*User, error)
	// Get finds a user by id.
	Get(ctx context.Context, id uuid.UUID) (*User, error)
	// Add inserts a new user under id.
	Add(ctx context.Context, id uuid.UUID, user *User) error
	// Update replaces the user stored under id.
	Update(ctx context.Context, id uuid.UUID, user *User) error
	// Delete removes the user stored under id, if any.
	Delete(ctx context.Context, id uuid.UUID) error
}

// InMemoryUserStore stores users in memory
type InMemoryUserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*User
}

// NewInMemoryUserStore returns a new in-memory user store
func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		users: make(map[uuid.UUID]*User),
	}
}

// GetAll returns copies of all users ordered by id
func (store *InMemoryUserStore) GetAll(ctx context.Context) ([]*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	store.mu.RLock()
	defer store.mu.RUnlock()

	users := make([]*User, 0, len(store.users))
	for _, user := range store.users {
		other, err := user.Clone()
		if err != nil {
			return nil, fmt.Errorf("cannot copy user: %w", err)
		}
		users = append(users, other)
	}

	sort.Slice(users, func(i, j int) bool {
		return bytes.Compare(users[i].ID[:], users[j].ID[:]) < 0
	})

	return users, nil
}

// Get finds a user by id
func (store *InMemoryUserStore) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	store.mu.RLock()
	defer store.mu.RUnlock()

	user := store.users[id]
	if user == nil {
		return nil, ErrNotFound
	}

	return user.Clone()
}

// Add saves a new user to the store
func (store *InMemoryUserStore) Add(ctx context.Context, id uuid.UUID, user *User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	if store.users[id] != nil {
		return ErrAlreadyExists
	}

	other, err := user.Clone()
	if err != nil {
		return fmt.Errorf("cannot copy user: %w", err)
	}

	store.users[id] = other
	return nil
}

// Update replaces an existing user
func (store *InMemoryUserStore) Update(ctx context.Context, id uuid.UUID, user *User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	if store.users[id] == nil {
		return ErrNotFound
	}

	other, err := user.Clone()
	if err != nil {
		return fmt.Errorf("cannot copy user: %w", err)
	}

	store.users[id] = other
	return nil
}

// Delete removes a user; deleting an unknown id is not an error
func (store *InMemoryUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.users, id)
	return nil
}
