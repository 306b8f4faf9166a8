// Package service implements the authentication core: registration with
// duplicate detection, credential login with token issuance, and the
// token gate used by protected endpoints.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kaziabulhasib/EasyPay-server/internal/models"
	"github.com/kaziabulhasib/EasyPay-server/internal/repository"
	"github.com/kaziabulhasib/EasyPay-server/internal/util"
)

var (
	// ErrDuplicateUser means the candidate's email or mobile is taken.
	ErrDuplicateUser = errors.New("user already exists")
	// ErrInvalidCredentials covers both an unknown identifier and a
	// wrong PIN. Callers must not be able to tell which one happened.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNoToken means the request carried no token at all.
	ErrNoToken = errors.New("missing token")
	// ErrInvalidToken means the token is malformed, tampered or expired.
	ErrInvalidToken = errors.New("invalid token")
)

// dummyPinHash is verified against when the login identifier matches no
// record, so the miss costs the same bcrypt work as a wrong PIN. It is
// the hash of no real credential.
const dummyPinHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService orchestrates the repository, the PIN hasher and the token
// issuer. It holds no state between requests.
type AuthService struct {
	repo      repository.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

// NewAuthService wires the service with its dependencies.
func NewAuthService(repo repository.UserRepository, jwtSecret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: ttl}
}

// TokenTTL returns the configured token lifetime, used for the cookie
// max-age.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}

// Register stores a new user after checking that no record already uses
// the candidate's email or mobile. The pin field is replaced with its
// bcrypt hash before the insert. Returns the stored record with its
// assigned id.
func (s *AuthService) Register(ctx context.Context, candidate *models.User) (*models.User, error) {
	_, err := s.repo.FindByEmailOrMobile(ctx, candidate.Email, candidate.Mobile)
	if err == nil {
		return nil, ErrDuplicateUser
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := util.HashPin(candidate.Pin)
	if err != nil {
		return nil, fmt.Errorf("hash pin: %w", err)
	}
	candidate.Pin = hash

	stored, err := s.repo.Insert(ctx, candidate)
	if err != nil {
		// 并发注册时预检查可能同时通过，靠唯一索引兜底
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return stored, nil
}

// Login verifies identifier + pin and issues a signed token on success.
// An unknown identifier and a wrong PIN return the same error, and both
// paths run one bcrypt comparison.
func (s *AuthService) Login(ctx context.Context, identifier, pin string) (string, error) {
	user, err := s.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			util.CheckPin(pin, dummyPinHash)
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if !util.CheckPin(pin, user.Pin) {
		return "", ErrInvalidCredentials
	}

	token, err := util.GenerateToken(s.jwtSecret, user.ID.Hex(), s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

// Authenticate is the gate for protected endpoints: it verifies the
// token and returns the user id it binds. The verification is stateless,
// there is no session lookup.
func (s *AuthService) Authenticate(token string) (string, error) {
	if token == "" {
		return "", ErrNoToken
	}
	claims, err := util.ParseToken(s.jwtSecret, token)
	if err != nil {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}

// ListUsers returns every stored record.
func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.ListAll(ctx)
}

// GetUser returns a single record by id.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}
