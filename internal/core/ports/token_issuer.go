package ports

import (
	"context"

	"github.com/orderdispatcher/auth-service/internal/core/domain"
)

// TokenIssuer mints signed, time-bounded bearer tokens asserting the
// account's identity and current roles.
type TokenIssuer interface {
	CreateToken(ctx context.Context, account *domain.Account) (string, error)
}
