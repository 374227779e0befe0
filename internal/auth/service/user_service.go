package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/AnthoniusHendriyanto/studypath-auth/internal/auth/domain"
	"github.com/AnthoniusHendriyanto/studypath-auth/internal/auth/dto"
	autherror "github.com/AnthoniusHendriyanto/studypath-auth/internal/errors"
	"github.com/AnthoniusHendriyanto/studypath-auth/internal/metrics"
	"github.com/google/uuid"
)

// dummyPassword is hashed once and verified against when a login names an
// unknown email, so that path costs the same as a wrong password.
const dummyPassword = "studypath-timing-equalizer"

type UserService struct {
	repo         domain.UserRepository
	hasher       domain.PasswordHasher
	tokenService TokenGenerator
	cache        domain.SessionCache
	logger       *slog.Logger
	metrics      metrics.Recorder
	now          func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewUserService(
	repo domain.UserRepository,
	hasher domain.PasswordHasher,
	tokenService TokenGenerator,
	cache domain.SessionCache,
	logger *slog.Logger,
	recorder metrics.Recorder,
) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.Noop{}
	}
	return &UserService{
		repo:         repo,
		hasher:       hasher,
		tokenService: tokenService,
		cache:        cache,
		logger:       logger,
		metrics:      recorder,
		now:          time.Now,
	}
}

// Register creates the account, issues its first token and mirrors it into
// the session cache when the cache is up.
//
// The insert is the only durable step. If signing fails afterwards the account
// still exists and the client can simply log in.
func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*dto.AuthResponse, error) {
	input.Normalize()
	if err := input.Validate(); err != nil {
		s.metrics.RecordAuth(metrics.OpRegister, metrics.ResultFailure)
		return nil, fmt.Errorf("%w: %v", autherror.ErrValidation, err)
	}

	existingUser, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		s.metrics.RecordAuth(metrics.OpRegister, metrics.ResultError)
		return nil, err
	}
	if existingUser != nil {
		s.metrics.RecordAuth(metrics.OpRegister, metrics.ResultFailure)
		return nil, autherror.ErrEmailAlreadyInUse
	}

	hashedPassword, err := s.hash(input.Password)
	if err != nil {
		s.metrics.RecordAuth(metrics.OpRegister, metrics.ResultError)
		s.logger.ErrorContext(ctx, "password hashing failed", "error", err)
		return nil, err
	}

	user := domain.NewUser(uuid.NewString(), input.Email, hashedPassword, input.Name, s.now().UTC())

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, autherror.ErrEmailAlreadyInUse) {
			s.metrics.RecordAuth(metrics.OpRegister, metrics.ResultFailure)
			return nil, autherror.ErrEmailAlreadyInUse
		}
		s.metrics.RecordAuth(metrics.OpRegister, metrics.ResultError)
		return nil, err
	}

	resp, err := s.issue(ctx, metrics.OpRegister, user)
	if err != nil {
		s.metrics.RecordAuth(metrics.OpRegister, metrics.ResultError)
		s.logger.ErrorContext(ctx, "token issuance failed after account creation", "user_id", user.ID, "error", err)
		return nil, err
	}

	s.metrics.RecordAuth(metrics.OpRegister, metrics.ResultSuccess)
	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	return resp, nil
}

// Login checks the credentials and issues a fresh token, replacing any cached
// one. An unknown email and a wrong password both yield ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	email := domain.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		s.metrics.RecordAuth(metrics.OpLogin, metrics.ResultFailure)
		return nil, autherror.ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		s.metrics.RecordAuth(metrics.OpLogin, metrics.ResultError)
		return nil, err
	}

	if user == nil {
		s.hasher.Verify(input.Password, s.timingHash())
		s.metrics.RecordAuth(metrics.OpLogin, metrics.ResultFailure)
		return nil, autherror.ErrInvalidCredentials
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		s.metrics.RecordAuth(metrics.OpLogin, metrics.ResultFailure)
		return nil, autherror.ErrInvalidCredentials
	}

	now := s.now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.WarnContext(ctx, "failed to record last login", "user_id", user.ID, "error", err)
	} else {
		user.LastLogin = &now
	}

	resp, err := s.issue(ctx, metrics.OpLogin, user)
	if err != nil {
		s.metrics.RecordAuth(metrics.OpLogin, metrics.ResultError)
		s.logger.ErrorContext(ctx, "token issuance failed", "user_id", user.ID, "error", err)
		return nil, err
	}

	s.metrics.RecordAuth(metrics.OpLogin, metrics.ResultSuccess)
	s.logger.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return resp, nil
}

// Logout drops the cached session for the token's owner. It cannot fail:
// an undecodable token has nothing to revoke, and cache trouble is only logged.
func (s *UserService) Logout(ctx context.Context, token string) {
	defer func() {
		if r := recover(); r != nil {
			s.metrics.RecordAuth(metrics.OpLogout, metrics.ResultError)
			s.logger.ErrorContext(ctx, "logout panicked", "panic", r)
		}
	}()

	claims, err := s.tokenService.VerifyToken(token)
	if err != nil {
		s.metrics.RecordAuth(metrics.OpLogout, metrics.ResultFailure)
		s.logger.DebugContext(ctx, "logout with unusable token", "reason", err)
		return
	}

	if !s.cache.IsAvailable(ctx) {
		s.metrics.RecordSessionCacheSkipped(metrics.OpLogout)
	} else if err := s.cache.Delete(ctx, claims.UserID); err != nil {
		s.metrics.RecordSessionCacheFailure(metrics.OpLogout)
		s.logger.WarnContext(ctx, "session cache delete failed", "user_id", claims.UserID, "error", err)
	}

	s.metrics.RecordAuth(metrics.OpLogout, metrics.ResultSuccess)
	s.logger.InfoContext(ctx, "user logged out", "user_id", claims.UserID)
}

// Me returns the public view of the account with the given id.
func (s *UserService) Me(ctx context.Context, userID string) (*dto.PublicUser, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrUserNotFound
	}

	pub := dto.ToPublicUser(user)
	return &pub, nil
}

// issue signs a token for user and caches it. The cache write comes last and
// its failure is absorbed.
func (s *UserService) issue(ctx context.Context, op string, user *domain.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.tokenService.Generate(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	if !s.cache.IsAvailable(ctx) {
		s.metrics.RecordSessionCacheSkipped(op)
	} else if err := s.cache.Put(ctx, user.ID, token, s.tokenService.GetTokenExpiry()); err != nil {
		s.metrics.RecordSessionCacheFailure(op)
		s.logger.WarnContext(ctx, "session cache write failed", "op", op, "user_id", user.ID, "error", err)
	}

	return &dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.ToPublicUser(user),
	}, nil
}

func (s *UserService) hash(plaintext string) (string, error) {
	start := time.Now()
	hashed, err := s.hasher.Hash(plaintext)
	s.metrics.RecordHashDuration(time.Since(start))
	return hashed, err
}

func (s *UserService) timingHash() string {
	s.dummyOnce.Do(func() {
		hashed, err := s.hasher.Hash(dummyPassword)
		if err != nil {
			s.logger.Warn("failed to prepare timing hash", "error", err)
			return
		}
		s.dummyHash = hashed
	})
	return s.dummyHash
}
