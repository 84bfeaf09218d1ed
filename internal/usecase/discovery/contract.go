package discovery

import (
	"context"

	"github.com/vuzz-app/vuzz/internal/domain"
	"github.com/vuzz-app/vuzz/internal/domain/event"
	"github.com/vuzz-app/vuzz/internal/domain/user"
)

// EventSource reads the full candidate collection.
type EventSource interface {
	All(ctx context.Context) ([]event.Event, error)
}

// UserSource reads a user's profile and decision history and appends new
// decisions. AppendInteraction must be a single atomic append.
type UserSource interface {
	Get(ctx context.Context, id string) (user.Profile, error)
	Interactions(ctx context.Context, id string) (user.InteractionState, error)
	AppendInteraction(ctx context.Context, userID string, decision domain.Decision, eventID string) error
}
