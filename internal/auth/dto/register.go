package dto

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	MinPasswordLength = 6
	// Length counts bytes, matching bcrypt's 72-byte limit.
	MaxPasswordLength = 72
)

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Normalize trims the email and name and lowercases the email. The password
// is left untouched.
func (r *RegisterInput) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)
}

func (r RegisterInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(3, 254), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(MinPasswordLength, MaxPasswordLength)),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
	)
}
