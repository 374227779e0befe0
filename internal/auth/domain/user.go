package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

type Plan string

const (
	PlanFree         Plan = "free"
	PlanBasic        Plan = "basic"
	PlanAdvanced     Plan = "advanced"
	PlanProfessional Plan = "professional"
)

const DefaultLanguage = "zh-CN"

// User is the stored account. PasswordHash must never leave the service;
// use dto.ToPublicUser for anything sent to a client.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	Subscription Subscription
	Profile      Profile
	Settings     Settings
	LastLogin    *time.Time
	IsActive     bool
	CreatedAt    time.Time
}

type Subscription struct {
	Plan          Plan       `json:"plan"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	AutoRenew     bool       `json:"auto_renew"`
}

type Profile struct {
	Avatar        string   `json:"avatar,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	School        string   `json:"school,omitempty"`
	TargetSchools []string `json:"target_schools"`
	Subjects      []string `json:"subjects"`
}

type Notifications struct {
	Email bool `json:"email"`
	Push  bool `json:"push"`
}

type Settings struct {
	Notifications Notifications `json:"notifications"`
	Language      string        `json:"language"`
}

// NewUser builds an account with the default role, subscription, profile and
// settings. The caller supplies an already hashed password.
func NewUser(id, email, passwordHash, name string, now time.Time) *User {
	return &User{
		ID:           id,
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Name:         strings.TrimSpace(name),
		Role:         RoleStudent,
		Subscription: Subscription{Plan: PlanFree},
		Profile: Profile{
			TargetSchools: []string{},
			Subjects:      []string{},
		},
		Settings: Settings{
			Notifications: Notifications{Email: true, Push: true},
			Language:      DefaultLanguage,
		},
		IsActive:  true,
		CreatedAt: now,
	}
}

// NormalizeEmail lowercases and trims an email address. Every lookup and
// insert goes through it so the unique index sees one spelling per address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
