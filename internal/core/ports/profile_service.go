package ports

import (
	"context"

	"github.com/orderdispatcher/auth-service/internal/core/domain"
)

// ProfileSaveInput carries a profile upsert for the authenticated caller.
type ProfileSaveInput struct {
	FirstName   string
	LastName    string
	PhoneNumber string
}

// AddressSaveInput carries a new address for the authenticated caller.
type AddressSaveInput struct {
	Title   string
	Address string
}

type ProfileService interface {
	SaveProfile(ctx context.Context, userID string, in ProfileSaveInput) (*domain.Profile, error)
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	SaveAddress(ctx context.Context, userID string, in AddressSaveInput) (*domain.Address, error)
	GetAddress(ctx context.Context, userID, addressID string) (*domain.Address, error)
	ListAddresses(ctx context.Context, userID string) ([]domain.Address, error)
}
