// Package user holds the user profile aggregate and interaction state.
package user

import (
	"fmt"
	"strings"

	"github.com/vuzz-app/vuzz/internal/domain"
	"github.com/vuzz-app/vuzz/internal/domain/tag"
)

// Profile is the user profile aggregate (immutable value object).
type Profile struct {
	id           string
	email        string
	username     string
	firstName    string
	lastName     string
	age          int
	city         string
	state        string
	latitude     float64
	longitude    float64
	tags         []string
	profileImage string
	createdAt    int64
}

// New validates and creates a Profile.
func New(
	id, email, username, firstName, lastName string, age int,
	city, state string, latitude, longitude float64,
	tags []string, profileImage string, createdAt int64,
) (Profile, error) {
	if id == "" {
		return Profile{}, fmt.Errorf("user ID is required: %w", domain.ErrInvalidInput)
	}
	if email == "" || !strings.Contains(email, "@") {
		return Profile{}, fmt.Errorf("valid email is required: %w", domain.ErrInvalidInput)
	}
	if age < 0 {
		return Profile{}, fmt.Errorf("age must not be negative: %w", domain.ErrInvalidInput)
	}
	if err := tag.ValidateAll(tags); err != nil {
		return Profile{}, err
	}

	return Profile{
		id: id, email: email, username: username,
		firstName: firstName, lastName: lastName, age: age,
		city: city, state: state,
		latitude: latitude, longitude: longitude,
		tags: cloneTags(tags), profileImage: profileImage, createdAt: createdAt,
	}, nil
}

// Reconstruct creates a Profile without validation (storage hydration).
func Reconstruct(
	id, email, username, firstName, lastName string, age int,
	city, state string, latitude, longitude float64,
	tags []string, profileImage string, createdAt int64,
) Profile {
	return Profile{
		id: id, email: email, username: username,
		firstName: firstName, lastName: lastName, age: age,
		city: city, state: state,
		latitude: latitude, longitude: longitude,
		tags: tags, profileImage: profileImage, createdAt: createdAt,
	}
}

// ID returns the user identifier.
func (p *Profile) ID() string { return p.id }

// Email returns the registration email.
func (p *Profile) Email() string { return p.email }

// Username returns the handle used in search and chat.
func (p *Profile) Username() string { return p.username }

// FirstName returns the user's first name.
func (p *Profile) FirstName() string { return p.firstName }

// LastName returns the user's last name.
func (p *Profile) LastName() string { return p.lastName }

// Age returns the user's age.
func (p *Profile) Age() int { return p.age }

// City returns the user's city.
func (p *Profile) City() string { return p.city }

// State returns the user's state.
func (p *Profile) State() string { return p.state }

// Latitude returns the last-known latitude.
func (p *Profile) Latitude() float64 { return p.latitude }

// Longitude returns the last-known longitude.
func (p *Profile) Longitude() float64 { return p.longitude }

// Tags returns the user's interest tags.
func (p *Profile) Tags() []string { return p.tags }

// ProfileImage returns the avatar URL.
func (p *Profile) ProfileImage() string { return p.profileImage }

// CreatedAt returns the registration time in unix milliseconds.
func (p *Profile) CreatedAt() int64 { return p.createdAt }

// InteractionState is a user's decision history: ordered liked and
// disliked event ids (insertion order = decision order).
type InteractionState struct {
	Liked    []string
	Disliked []string
}

// InteractedSet returns the union of liked and disliked ids. Duplicates
// across the two lists are tolerated and collapse in the set.
func (s InteractionState) InteractedSet() map[string]struct{} {
	set := make(map[string]struct{}, len(s.Liked)+len(s.Disliked))
	for _, id := range s.Liked {
		set[id] = struct{}{}
	}
	for _, id := range s.Disliked {
		set[id] = struct{}{}
	}
	return set
}

func cloneTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	c := make([]string, len(tags))
	copy(c, tags)
	return c
}
