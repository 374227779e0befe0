package domain

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/AnthoniusHendriyanto/studypath-auth/internal/auth/domain UserRepository
//go:generate mockgen -destination=../../mocks/mock_session_cache.go -package=mocks github.com/AnthoniusHendriyanto/studypath-auth/internal/auth/domain SessionCache
//go:generate mockgen -destination=../../mocks/mock_password_hasher.go -package=mocks github.com/AnthoniusHendriyanto/studypath-auth/internal/auth/domain PasswordHasher

import (
	"context"
	"time"
)

// UserRepository is the durable account store. GetByEmail and GetByID return
// (nil, nil) when nothing matches. Create returns ErrEmailAlreadyInUse when
// the email is taken.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	Ping(ctx context.Context) error
}

// SessionCache maps a user id to the last token issued for it. It is
// advisory: callers must treat every error as a non-event.
type SessionCache interface {
	Put(ctx context.Context, userID, token string, ttl time.Duration) error
	Get(ctx context.Context, userID string) (string, error)
	Delete(ctx context.Context, userID string) error
	IsAvailable(ctx context.Context) bool
	Close() error
}

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}
