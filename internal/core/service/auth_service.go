package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/orderdispatcher/auth-service/internal/core/domain"
	"github.com/orderdispatcher/auth-service/internal/core/ports"
)

// AuthService implements registration and login on top of the credential
// store, the token issuer, and the profile-created publisher.
type AuthService struct {
	repo      ports.CredentialRepository
	issuer    ports.TokenIssuer
	publisher ports.ProfilePublisher
	roles     domain.RoleTable
	log       zerolog.Logger
}

func NewAuthService(
	repo ports.CredentialRepository,
	issuer ports.TokenIssuer,
	publisher ports.ProfilePublisher,
	roles domain.RoleTable,
	log zerolog.Logger,
) *AuthService {
	if len(roles) == 0 {
		roles = domain.DefaultRoleTable()
	}
	return &AuthService{
		repo:      repo,
		issuer:    issuer,
		publisher: publisher,
		roles:     roles,
		log:       log,
	}
}

// Register creates a new account, assigns exactly one role resolved from the
// userType selector, and publishes a profile-created event.
//
// Checks run in a fixed order and the first failure wins. Account creation
// and role assignment are two store operations without a shared transaction;
// a role-assignment failure leaves the account without its role and is
// reported as such. A publish failure never fails the registration — the
// publisher's retry policy owns delivery from that point.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) error {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)

	if username == "" || email == "" || in.Password == "" {
		return domain.ErrInvalidPayload
	}

	if existing, err := s.repo.FindByEmail(ctx, email); err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
		return fmt.Errorf("register: find by email: %w", err)
	} else if existing != nil {
		return domain.ErrEmailTaken
	}

	if existing, err := s.repo.FindByUsername(ctx, username); err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
		return fmt.Errorf("register: find by username: %w", err)
	} else if existing != nil {
		return domain.ErrUsernameTaken
	}

	role, ok := s.roles.Resolve(in.UserType)
	if !ok {
		return domain.ErrInvalidRole
	}

	account := &domain.Account{
		Username: username,
		Email:    email,
	}

	// The store is the final arbiter of uniqueness: a concurrent
	// registration may have won the race since the checks above, in which
	// case Create reports the taken identity.
	created, err := s.repo.Create(ctx, account, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) || errors.Is(err, domain.ErrUsernameTaken) {
			return err
		}
		return fmt.Errorf("%w: %s", domain.ErrCredentialCreation, firstReason(err))
	}

	exists, err := s.repo.RoleExists(ctx, role)
	if err != nil {
		return fmt.Errorf("register: role exists: %w", err)
	}
	if !exists {
		return domain.ErrRoleNotConfigured
	}

	if err := s.repo.AddToRole(ctx, created, role); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrRoleAssignment, firstReason(err))
	}

	event := domain.ProfileCreatedEvent{
		UserID:    created.ID,
		Username:  username,
		Email:     email,
		FirstName: strings.TrimSpace(in.FirstName),
		UserRole:  in.UserType,
	}
	if err := s.publisher.PublishProfileCreated(ctx, event); err != nil {
		s.log.Error().Err(err).
			Str("user_id", created.ID).
			Str("email", email).
			Msg("profile created event not delivered")
	}

	s.log.Info().
		Str("user_id", created.ID).
		Str("username", username).
		Str("role", role).
		Msg("account registered")

	return nil
}

// Login resolves the identifier as an email first, then as a username, and
// verifies the password through the store. Unknown identifiers and wrong
// passwords produce the same error so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*ports.LoginResult, error) {
	identifier = strings.TrimSpace(identifier)
	password = strings.TrimSpace(password)
	if identifier == "" || password == "" {
		return nil, domain.ErrInvalidPayload
	}

	account, err := s.repo.FindByEmail(ctx, identifier)
	if errors.Is(err, domain.ErrAccountNotFound) {
		account, err = s.repo.FindByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: lookup: %w", err)
	}

	valid, err := s.repo.CheckPassword(ctx, account, password)
	if err != nil {
		return nil, fmt.Errorf("login: check password: %w", err)
	}
	if !valid {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issuer.CreateToken(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("login: create token: %w", err)
	}

	return &ports.LoginResult{
		UserID:      account.ID,
		BearerToken: token,
		Email:       account.Email,
	}, nil
}

// firstReason collapses a multi-line store failure to its first reported
// reason, which is what clients see.
func firstReason(err error) string {
	msg := err.Error()
	if i := strings.IndexByte(msg, ';'); i > 0 {
		msg = msg[:i]
	}
	return strings.TrimSpace(msg)
}
