package ports

import (
	"context"

	"github.com/orderdispatcher/auth-service/internal/core/domain"
)

// ProfileRepository persists profiles and addresses.
type ProfileRepository interface {
	UpsertProfile(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)
	FindProfileByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	InsertAddress(ctx context.Context, address *domain.Address) (*domain.Address, error)
	FindAddress(ctx context.Context, addressID, userID string) (*domain.Address, error)
	ListAddresses(ctx context.Context, userID string) ([]domain.Address, error)
}
