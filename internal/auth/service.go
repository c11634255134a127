package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
)

// Service manages lecturer accounts and refresh token rotation.
type Service struct {
	db         *sql.DB
	issuer     string
	signingKey string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewService creates an auth service.
func NewService(db *sql.DB, issuer, signingKey string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{db: db, issuer: issuer, signingKey: signingKey, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// Register creates an account. The profile row is created by the database
// bootstrap trigger, falling back to a default display name when fullName is
// empty.
func (s *Service) Register(ctx context.Context, email, password, fullName string) (uuid.UUID, TokenPair, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, TokenPair{}, fmt.Errorf("hash password: %w", err)
	}

	var id uuid.UUID
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO accounts (email, password_hash, full_name)
		VALUES ($1, $2, $3)
		RETURNING id
	`, email, string(hash), fullName).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return uuid.Nil, TokenPair{}, ErrEmailTaken
		}
		return uuid.Nil, TokenPair{}, err
	}

	tokens, err := s.issueAndStore(ctx, id)
	return id, tokens, err
}

// Login verifies credentials and issues a fresh token pair.
func (s *Service) Login(ctx context.Context, email, password string) (uuid.UUID, TokenPair, error) {
	var id uuid.UUID
	var hash string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, password_hash FROM accounts WHERE email = $1
	`, email).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, TokenPair{}, ErrInvalidCredentials
	}
	if err != nil {
		return uuid.Nil, TokenPair{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return uuid.Nil, TokenPair{}, ErrInvalidCredentials
	}

	tokens, err := s.issueAndStore(ctx, id)
	return id, tokens, err
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued. A revoked or expired token is rejected.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (uuid.UUID, TokenPair, error) {
	claims, err := Parse(refreshToken, s.signingKey, s.issuer)
	if err != nil {
		return uuid.Nil, TokenPair{}, ErrInvalidRefresh
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, TokenPair{}, ErrInvalidRefresh
	}

	var revoked bool
	var expiresAt time.Time
	err = s.db.QueryRowContext(ctx, `
		SELECT revoked, expires_at FROM refresh_tokens WHERE token = $1 AND lecturer_id = $2
	`, refreshToken, id).Scan(&revoked, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, TokenPair{}, ErrInvalidRefresh
	}
	if err != nil {
		return uuid.Nil, TokenPair{}, err
	}
	if revoked || time.Now().After(expiresAt) {
		return uuid.Nil, TokenPair{}, ErrInvalidRefresh
	}

	if err := s.Revoke(ctx, refreshToken); err != nil {
		return uuid.Nil, TokenPair{}, err
	}
	tokens, err := s.issueAndStore(ctx, id)
	return id, tokens, err
}

// Revoke marks a refresh token unusable. Used on logout and rotation.
func (s *Service) Revoke(ctx context.Context, refreshToken string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE refresh_tokens SET revoked = TRUE WHERE token = $1
	`, refreshToken)
	return err
}

func (s *Service) issueAndStore(ctx context.Context, id uuid.UUID) (TokenPair, error) {
	tokens, err := Issue(id.String(), s.issuer, s.signingKey, s.accessTTL, s.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO refresh_tokens (token, lecturer_id, expires_at)
		VALUES ($1, $2, $3)
	`, tokens.RefreshToken, id, tokens.RefreshExp)
	if err != nil {
		return TokenPair{}, err
	}
	return tokens, nil
}
