// Package password hashes and verifies account passwords with bcrypt.
package password

import (
	"errors"
	"fmt"

	autherror "github.com/AnthoniusHendriyanto/studypath-auth/internal/errors"
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost keeps verification in the tens of milliseconds on commodity hardware.
const DefaultCost = 10

// MaxLength is the longest password bcrypt accepts without truncation.
const MaxLength = 72

var errTooLong = errors.New("password exceeds 72 bytes")

type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using cost, or DefaultCost when cost is
// outside bcrypt's accepted range.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Cost() int {
	return h.cost
}

// Hash salts and hashes plaintext. Errors wrap ErrHashing and never include
// the plaintext.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	if len(plaintext) > MaxLength {
		return "", fmt.Errorf("%w: %v", autherror.ErrHashing, errTooLong)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", autherror.ErrHashing, err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches hash. A malformed hash is a mismatch.
// Plaintexts over MaxLength never match: bcrypt would compare only their prefix.
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	if len(plaintext) > MaxLength {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
