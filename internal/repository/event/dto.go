package event

import (
	"encoding/json"
	"fmt"

	domevent "github.com/vuzz-app/vuzz/internal/domain/event"
)

// eventDTO is the stored JSON shape of an event document.
type eventDTO struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Date        string      `json:"date,omitempty"`
	Time        string      `json:"time,omitempty"`
	Location    locationDTO `json:"location"`
	Tags        []string    `json:"tags,omitempty"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	CreatedBy   string      `json:"createdBy,omitempty"`
	CreatedAt   int64       `json:"createdAt"`
}

type locationDTO struct {
	Text      string  `json:"text,omitempty"`
	City      string  `json:"city,omitempty"`
	State     string  `json:"state,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

func toDTO(ev *domevent.Event) eventDTO {
	loc := ev.Location()
	return eventDTO{
		ID:          ev.ID(),
		Title:       ev.Title(),
		Description: ev.Description(),
		Date:        ev.Date(),
		Time:        ev.Time(),
		Location: locationDTO{
			Text:      loc.Text,
			City:      loc.City,
			State:     loc.State,
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
		},
		Tags:      ev.Tags(),
		ImageURL:  ev.ImageURL(),
		CreatedBy: ev.CreatedBy(),
		CreatedAt: ev.CreatedAt(),
	}
}

// parseEvent hydrates an event from a JSON.GET result. JSON.GET with a
// "$" path wraps the document in a one-element array.
func parseEvent(id string, raw []byte) (domevent.Event, error) {
	var dtos []eventDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		// Tolerate an unwrapped document (path-less JSON.GET).
		var dto eventDTO
		if err2 := json.Unmarshal(raw, &dto); err2 != nil {
			return domevent.Event{}, fmt.Errorf("unmarshal event %s: %w", id, err)
		}
		dtos = []eventDTO{dto}
	}
	if len(dtos) == 0 {
		return domevent.Event{}, fmt.Errorf("empty event document %s", id)
	}

	d := dtos[0]
	if d.ID == "" {
		d.ID = id
	}
	return domevent.Reconstruct(
		d.ID, d.Title, d.Description, d.Date, d.Time,
		domevent.Location{
			Text:      d.Location.Text,
			City:      d.Location.City,
			State:     d.Location.State,
			Latitude:  d.Location.Latitude,
			Longitude: d.Location.Longitude,
		},
		d.Tags, d.ImageURL, d.CreatedBy, d.CreatedAt,
	), nil
}
