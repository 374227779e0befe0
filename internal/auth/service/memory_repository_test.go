package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/AnthoniusHendriyanto/studypath-auth/internal/auth/domain"
	autherror "github.com/AnthoniusHendriyanto/studypath-auth/internal/errors"
)

// memoryRepository is a UserRepository with a unique email index, used where
// the tests need real store semantics rather than call expectations.
type memoryRepository struct {
	mu      sync.Mutex
	byID    map[string]domain.User
	byEmail map[string]string
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		byID:    map[string]domain.User{},
		byEmail: map[string]string{},
	}
}

func (r *memoryRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[domain.NormalizeEmail(email)]
	if !ok {
		return nil, nil
	}
	u := r.byID[id]
	return &u, nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *memoryRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return autherror.ErrEmailAlreadyInUse
	}
	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *memoryRepository) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return autherror.ErrUserNotFound
	}
	u.LastLogin = &at
	r.byID[id] = u
	return nil
}

func (r *memoryRepository) Ping(context.Context) error { return nil }

func (r *memoryRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

func (r *memoryRepository) raw(email string) (domain.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[email]
	if !ok {
		return domain.User{}, false
	}
	return r.byID[id], true
}
