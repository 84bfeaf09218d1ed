package user

import (
	"encoding/json"
	"fmt"

	domuser "github.com/vuzz-app/vuzz/internal/domain/user"
)

// profileDTO is the stored JSON shape of a user profile document.
type profileDTO struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	Username     string   `json:"username,omitempty"`
	FirstName    string   `json:"firstName,omitempty"`
	LastName     string   `json:"lastName,omitempty"`
	Age          int      `json:"age,omitempty"`
	City         string   `json:"city,omitempty"`
	State        string   `json:"state,omitempty"`
	Latitude     float64  `json:"latitude,omitempty"`
	Longitude    float64  `json:"longitude,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	ProfileImage string   `json:"profileImage,omitempty"`
	CreatedAt    int64    `json:"createdAt"`
}

func toDTO(p *domuser.Profile) profileDTO {
	return profileDTO{
		ID:           p.ID(),
		Email:        p.Email(),
		Username:     p.Username(),
		FirstName:    p.FirstName(),
		LastName:     p.LastName(),
		Age:          p.Age(),
		City:         p.City(),
		State:        p.State(),
		Latitude:     p.Latitude(),
		Longitude:    p.Longitude(),
		Tags:         p.Tags(),
		ProfileImage: p.ProfileImage(),
		CreatedAt:    p.CreatedAt(),
	}
}

// parseProfile hydrates a profile from a JSON.GET result ("$" path wraps
// the document in a one-element array).
func parseProfile(id string, raw []byte) (domuser.Profile, error) {
	var dtos []profileDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		var dto profileDTO
		if err2 := json.Unmarshal(raw, &dto); err2 != nil {
			return domuser.Profile{}, fmt.Errorf("unmarshal profile %s: %w", id, err)
		}
		dtos = []profileDTO{dto}
	}
	if len(dtos) == 0 {
		return domuser.Profile{}, fmt.Errorf("empty profile document %s", id)
	}

	d := dtos[0]
	if d.ID == "" {
		d.ID = id
	}
	return domuser.Reconstruct(
		d.ID, d.Email, d.Username, d.FirstName, d.LastName, d.Age,
		d.City, d.State, d.Latitude, d.Longitude,
		d.Tags, d.ProfileImage, d.CreatedAt,
	), nil
}
