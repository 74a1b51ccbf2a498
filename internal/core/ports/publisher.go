package ports

import (
	"context"

	"github.com/orderdispatcher/auth-service/internal/core/domain"
)

// ProfilePublisher delivers a profile-created event to the message broker.
// Implementations must surface broker errors to the caller; the delivery
// policy on failure is the caller's decision.
type ProfilePublisher interface {
	PublishProfileCreated(ctx context.Context, event domain.ProfileCreatedEvent) error
}
