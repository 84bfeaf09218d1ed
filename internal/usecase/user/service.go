// Package user implements profile registration and preference updates.
package user

import (
	"context"
	"fmt"
	"time"

	"github.com/vuzz-app/vuzz/internal/domain"
	"github.com/vuzz-app/vuzz/internal/domain/tag"
	domuser "github.com/vuzz-app/vuzz/internal/domain/user"
)

// Service handles user profile operations. The user id comes from the
// authentication provider and is always an explicit parameter, never
// ambient state.
type Service struct {
	repo        Repository
	searchLimit int
}

// New creates a user service.
func New(repo Repository) *Service {
	return &Service{repo: repo, searchLimit: 10}
}

// WithSearchLimit configures the max number of search results.
func (s *Service) WithSearchLimit(limit int) *Service {
	if limit > 0 {
		s.searchLimit = limit
	}
	return s
}

// RegisterInput carries the fields captured at registration.
type RegisterInput struct {
	ID           string
	Email        string
	Username     string
	FirstName    string
	LastName     string
	Age          int
	City         string
	State        string
	Latitude     float64
	Longitude    float64
	Tags         []string
	ProfileImage string
}

// Register validates and stores a new profile, replacing any existing
// one under the same id.
func (s *Service) Register(ctx context.Context, in RegisterInput) (domuser.Profile, error) {
	p, err := domuser.New(
		in.ID, in.Email, in.Username, in.FirstName, in.LastName, in.Age,
		in.City, in.State, in.Latitude, in.Longitude,
		in.Tags, in.ProfileImage, time.Now().UnixMilli(),
	)
	if err != nil {
		return domuser.Profile{}, err
	}

	if err := s.repo.Put(ctx, &p); err != nil {
		return domuser.Profile{}, fmt.Errorf("store profile: %w", err)
	}
	return p, nil
}

// Get retrieves a profile by id.
func (s *Service) Get(ctx context.Context, id string) (domuser.Profile, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return domuser.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// SetTags replaces the user's interest tags. At least one tag from the
// vocabulary is required.
func (s *Service) SetTags(ctx context.Context, id string, tags []string) (domuser.Profile, error) {
	if len(tags) == 0 {
		return domuser.Profile{}, fmt.Errorf("at least one tag is required: %w", domain.ErrInvalidInput)
	}
	if err := tag.ValidateAll(tags); err != nil {
		return domuser.Profile{}, err
	}

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return domuser.Profile{}, fmt.Errorf("get profile: %w", err)
	}

	updated := domuser.Reconstruct(
		p.ID(), p.Email(), p.Username(), p.FirstName(), p.LastName(), p.Age(),
		p.City(), p.State(), p.Latitude(), p.Longitude(),
		tags, p.ProfileImage(), p.CreatedAt(),
	)
	if err := s.repo.Put(ctx, &updated); err != nil {
		return domuser.Profile{}, fmt.Errorf("store profile: %w", err)
	}
	return updated, nil
}

// SetLocation updates the user's coordinate and place labels.
func (s *Service) SetLocation(
	ctx context.Context, id string, latitude, longitude float64, city, state string,
) (domuser.Profile, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return domuser.Profile{}, fmt.Errorf("get profile: %w", err)
	}

	updated := domuser.Reconstruct(
		p.ID(), p.Email(), p.Username(), p.FirstName(), p.LastName(), p.Age(),
		city, state, latitude, longitude,
		p.Tags(), p.ProfileImage(), p.CreatedAt(),
	)
	if err := s.repo.Put(ctx, &updated); err != nil {
		return domuser.Profile{}, fmt.Errorf("store profile: %w", err)
	}
	return updated, nil
}

// Search returns profiles whose username starts with prefix.
func (s *Service) Search(ctx context.Context, prefix string, limit int) ([]domuser.Profile, error) {
	if limit <= 0 || limit > s.searchLimit {
		limit = s.searchLimit
	}
	profiles, err := s.repo.SearchByUsernamePrefix(ctx, prefix, limit)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return profiles, nil
}
