package user

import (
	"context"

	domuser "github.com/vuzz-app/vuzz/internal/domain/user"
)

// Repository defines the storage contract for user profiles.
type Repository interface {
	Put(ctx context.Context, p *domuser.Profile) error
	Get(ctx context.Context, id string) (domuser.Profile, error)
	SearchByUsernamePrefix(ctx context.Context, prefix string, limit int) ([]domuser.Profile, error)
}
