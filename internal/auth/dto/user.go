package dto

import (
	"time"

	"github.com/AnthoniusHendriyanto/studypath-auth/internal/auth/domain"
)

// PublicUser is the only account shape that leaves the service. It has no
// password field on purpose.
type PublicUser struct {
	ID           string              `json:"id"`
	Email        string              `json:"email"`
	Name         string              `json:"name"`
	Role         domain.Role         `json:"role"`
	Subscription domain.Subscription `json:"subscription"`
	Profile      domain.Profile      `json:"profile"`
	Settings     domain.Settings     `json:"settings"`
	LastLogin    *time.Time          `json:"last_login,omitempty"`
	IsActive     bool                `json:"is_active"`
	CreatedAt    time.Time           `json:"created_at"`
}

func ToPublicUser(u *domain.User) PublicUser {
	return PublicUser{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		Subscription: u.Subscription,
		Profile:      u.Profile,
		Settings:     u.Settings,
		LastLogin:    u.LastLogin,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
	}
}
