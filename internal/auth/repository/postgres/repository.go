package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AnthoniusHendriyanto/studypath-auth/internal/auth/domain"
	autherror "github.com/AnthoniusHendriyanto/studypath-auth/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// DB is the subset of *pgxpool.Pool the repository needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectUser = `
		SELECT id, email, password_hash, name, role, subscription, profile, settings,
		       last_login, is_active, created_at
		FROM users
`

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, selectUser+`WHERE email = $1 LIMIT 1;`, domain.NormalizeEmail(email))

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, selectUser+`WHERE id = $1 LIMIT 1;`, id)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// Create inserts user. The unique index on email decides concurrent
// registrations for the same address; the loser gets ErrEmailAlreadyInUse.
func (r *PostgresRepository) Create(ctx context.Context, user *domain.User) error {
	subscription, profile, settings, err := marshalDocuments(user)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, name, role, subscription, profile, settings, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, user.ID, user.Email, user.PasswordHash, user.Name, string(user.Role),
		subscription, profile, settings, user.IsActive, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return autherror.ErrEmailAlreadyInUse
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *PostgresRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET last_login = $1 WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return autherror.ErrUserNotFound
	}
	return nil
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var role string
	var subscription, profile, settings []byte

	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &role,
		&subscription, &profile, &settings, &user.LastLogin, &user.IsActive, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	user.Role = domain.Role(role)

	if err := unmarshalDocument(subscription, &user.Subscription); err != nil {
		return nil, fmt.Errorf("decode subscription: %w", err)
	}
	if err := unmarshalDocument(profile, &user.Profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if err := unmarshalDocument(settings, &user.Settings); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}

	return &user, nil
}

func marshalDocuments(user *domain.User) (subscription, profile, settings []byte, err error) {
	if subscription, err = json.Marshal(user.Subscription); err != nil {
		return nil, nil, nil, fmt.Errorf("encode subscription: %w", err)
	}
	if profile, err = json.Marshal(user.Profile); err != nil {
		return nil, nil, nil, fmt.Errorf("encode profile: %w", err)
	}
	if settings, err = json.Marshal(user.Settings); err != nil {
		return nil, nil, nil, fmt.Errorf("encode settings: %w", err)
	}
	return subscription, profile, settings, nil
}

func unmarshalDocument(raw []byte, v any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}
