package event

import (
	"context"

	domevent "github.com/vuzz-app/vuzz/internal/domain/event"
)

// Repository defines the storage contract for events.
type Repository interface {
	Put(ctx context.Context, ev *domevent.Event) error
	Get(ctx context.Context, id string) (domevent.Event, error)
	All(ctx context.Context) ([]domevent.Event, error)
	GetMulti(ctx context.Context, ids []string) ([]domevent.Event, error)
	Delete(ctx context.Context, id string) error
}

// SignupStore records which events a user signed up for.
type SignupStore interface {
	AddUserEvent(ctx context.Context, userID, eventID string) error
	UserEventIDs(ctx context.Context, userID string) ([]string, error)
}
