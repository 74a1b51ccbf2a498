package ports

import (
	"context"

	"github.com/orderdispatcher/auth-service/internal/core/domain"
)

// CredentialRepository defines the credential store boundary: identity
// records, password hashing/verification, and role memberships. Hashing
// happens behind this interface; plaintext passwords cross it exactly once
// at Create and once per CheckPassword.
type CredentialRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account, password string) (*domain.Account, error)
	CheckPassword(ctx context.Context, account *domain.Account, password string) (bool, error)
	RoleExists(ctx context.Context, role string) (bool, error)
	AddToRole(ctx context.Context, account *domain.Account, role string) error
	RolesOf(ctx context.Context, account *domain.Account) ([]string, error)
}
