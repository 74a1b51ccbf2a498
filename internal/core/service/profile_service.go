package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/orderdispatcher/auth-service/internal/core/domain"
	"github.com/orderdispatcher/auth-service/internal/core/ports"
)

// ProfileService handles profile and address reads/writes for the
// authenticated caller. The caller's id is resolved by the HTTP layer from
// the bearer token and treated here as an opaque string.
type ProfileService struct {
	repo ports.ProfileRepository
	log  zerolog.Logger
}

func NewProfileService(repo ports.ProfileRepository, log zerolog.Logger) *ProfileService {
	return &ProfileService{repo: repo, log: log}
}

// SaveProfile upserts the caller's profile fields.
func (s *ProfileService) SaveProfile(ctx context.Context, userID string, in ports.ProfileSaveInput) (*domain.Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrAccountNotFound
	}

	profile := &domain.Profile{
		UserID:      userID,
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
	}

	saved, err := s.repo.UpsertProfile(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return saved, nil
}

// GetProfile returns the profile for the given user id.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrAccountNotFound
	}
	return s.repo.FindProfileByUserID(ctx, userID)
}

// SaveAddress inserts a new address for the caller. Title and address line
// are both required after trimming.
func (s *ProfileService) SaveAddress(ctx context.Context, userID string, in ports.AddressSaveInput) (*domain.Address, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrAccountNotFound
	}

	title := strings.TrimSpace(in.Title)
	line := strings.TrimSpace(in.Address)
	if title == "" || line == "" {
		return nil, domain.ErrInvalidPayload
	}

	address := &domain.Address{
		UserID:      userID,
		Title:       title,
		AddressLine: line,
	}

	saved, err := s.repo.InsertAddress(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("save address: %w", err)
	}
	return saved, nil
}

// GetAddress returns one of the caller's addresses; other accounts'
// addresses are not reachable through this path.
func (s *ProfileService) GetAddress(ctx context.Context, userID, addressID string) (*domain.Address, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrAccountNotFound
	}
	return s.repo.FindAddress(ctx, addressID, userID)
}

// ListAddresses returns all of the caller's addresses.
func (s *ProfileService) ListAddresses(ctx context.Context, userID string) ([]domain.Address, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrAccountNotFound
	}
	return s.repo.ListAddresses(ctx, userID)
}
