package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/AnthoniusHendriyanto/studypath-auth/internal/auth/service TokenGenerator

import (
	"errors"
	"fmt"
	"time"

	autherror "github.com/AnthoniusHendriyanto/studypath-auth/internal/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL is the bearer token lifetime, and with it the session cache TTL.
const DefaultTokenTTL = 7 * 24 * time.Hour

type TokenGenerator interface {
	Generate(userID, email, role string) (string, time.Time, error)
	GetTokenExpiry() time.Duration
	VerifyToken(tokenString string) (*JWTCustomClaims, error)
}

type TokenService struct {
	Secret      string
	TokenExpiry time.Duration
	now         func() time.Time
}

type JWTCustomClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// NewTokenService returns an HS256 issuer. A non-positive ttl means DefaultTokenTTL.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		Secret:      secret,
		TokenExpiry: ttl,
		now:         time.Now,
	}
}

// Generate signs a token for the given identity. Every token gets a fresh
// jti, so two tokens issued in the same second still differ.
func (ts *TokenService) Generate(userID, email, role string) (string, time.Time, error) {
	now := ts.now()
	expiresAt := now.Add(ts.TokenExpiry)

	claims := JWTCustomClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return token, expiresAt, nil
}

func (ts *TokenService) GetTokenExpiry() time.Duration {
	return ts.TokenExpiry
}

// VerifyToken parses and validates the given token string. Failures are
// ErrTokenMalformed, ErrTokenSignatureInvalid or ErrTokenExpired, all of
// which match ErrInvalidToken.
func (ts *TokenService) VerifyToken(tokenString string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(ts.now),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		return nil, classifyTokenError(err)
	}

	if !token.Valid || claims.UserID == "" {
		return nil, autherror.ErrTokenMalformed
	}

	return claims, nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return autherror.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return autherror.ErrTokenSignatureInvalid
	default:
		return autherror.ErrTokenMalformed
	}
}
