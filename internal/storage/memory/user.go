package memory

import (
	"context"
	"sync"

	"github.com/shopease/storefront/internal/domain/user"
)

var _ user.Repository = (*UserRepository)(nil)

// UserRepository is a mutex-guarded in-memory user store.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]user.User
	byEmail map[string]string
}

// NewUserRepository returns an empty in-memory user repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]user.User),
		byEmail: make(map[string]string),
	}
}

// Create inserts a user, enforcing email uniqueness.
func (r *UserRepository) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[u.Email]; ok {
		return user.ErrEmailTaken
	}
	r.byID[u.ID] = *u
	r.byEmail[u.Email] = u.ID
	return nil
}

// GetByID returns the user with the given ID.
func (r *UserRepository) GetByID(_ context.Context, id string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return &u, nil
}

// GetByEmail returns the user with the given email.
func (r *UserRepository) GetByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, user.ErrNotFound
	}
	u := r.byID[id]
	return &u, nil
}

// Update rewrites an existing user, re-checking email uniqueness when the
// email changed.
func (r *UserRepository) Update(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.byID[u.ID]
	if !ok {
		return user.ErrNotFound
	}
	if u.Email != prev.Email {
		if _, taken := r.byEmail[u.Email]; taken {
			return user.ErrEmailTaken
		}
		delete(r.byEmail, prev.Email)
		r.byEmail[u.Email] = u.ID
	}
	r.byID[u.ID] = *u
	return nil
}
