package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/orderdispatcher/auth-service/internal/core/domain"
	"github.com/orderdispatcher/auth-service/internal/core/ports"
)

const defaultTokenTTL = 60 * time.Minute

// TokenService mints HS256-signed bearer tokens carrying the account's
// identity and its current role memberships.
type TokenService struct {
	repo     ports.CredentialRepository
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewTokenService builds a TokenService. A missing signing secret is a
// deployment defect, not a runtime condition, so it panics at construction.
func NewTokenService(repo ports.CredentialRepository, secret, issuer, audience string, ttl time.Duration) *TokenService {
	if secret == "" {
		panic("token service: signing secret is not configured")
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{
		repo:     repo,
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
	}
}

// CreateToken fetches the account's roles from the store and signs a token
// with subject, username, email, a fresh token id, and one role entry per
// membership. Not-before is now; expiry is now plus the configured TTL.
func (s *TokenService) CreateToken(ctx context.Context, account *domain.Account) (string, error) {
	roles, err := s.repo.RolesOf(ctx, account)
	if err != nil {
		return "", fmt.Errorf("create token: roles: %w", err)
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":         account.ID,
		"unique_name": account.Username,
		"email":       account.Email,
		"jti":         uuid.NewString(),
		"roles":       roles,
		"iss":         s.issuer,
		"aud":         s.audience,
		"nbf":         now.Unix(),
		"iat":         now.Unix(),
		"exp":         now.Add(s.ttl).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("create token: sign: %w", err)
	}
	return token, nil
}
