// Package event holds the event aggregate presented as a swipe candidate.
package event

import (
	"fmt"
	"strings"

	"github.com/vuzz-app/vuzz/internal/domain"
	"github.com/vuzz-app/vuzz/internal/domain/tag"
)

// MaxTitleLen bounds the display title.
const MaxTitleLen = 140

// Location is either free text or a structured place. A structured
// location without coordinates evaluates at (0,0).
type Location struct {
	Text      string
	City      string
	State     string
	Latitude  float64
	Longitude float64
}

// Event is the candidate aggregate (immutable value object).
// date and time are display strings, not calendar values.
type Event struct {
	id          string
	title       string
	description string
	date        string
	time        string
	location    Location
	tags        []string
	imageURL    string
	createdBy   string
	createdAt   int64
}

// New validates and creates an Event. The ID is assigned by the caller
// (service layer) before persistence.
func New(
	id, title, description, date, timeStr string,
	loc Location, tags []string, imageURL, createdBy string, createdAt int64,
) (Event, error) {
	if id == "" {
		return Event{}, fmt.Errorf("event ID is required: %w", domain.ErrInvalidInput)
	}
	if title == "" {
		return Event{}, fmt.Errorf("title is required: %w", domain.ErrInvalidInput)
	}
	if len(title) > MaxTitleLen {
		return Event{}, fmt.Errorf("title too long (max %d): %w", MaxTitleLen, domain.ErrInvalidInput)
	}
	if imageURL != "" && !strings.HasPrefix(imageURL, "http") {
		return Event{}, fmt.Errorf("image URL must be http(s): %w", domain.ErrInvalidInput)
	}
	if err := tag.ValidateAll(tags); err != nil {
		return Event{}, err
	}

	return Event{
		id:          id,
		title:       title,
		description: description,
		date:        date,
		time:        timeStr,
		location:    loc,
		tags:        cloneTags(tags),
		imageURL:    imageURL,
		createdBy:   createdBy,
		createdAt:   createdAt,
	}, nil
}

// Reconstruct creates an Event without validation (storage hydration).
func Reconstruct(
	id, title, description, date, timeStr string,
	loc Location, tags []string, imageURL, createdBy string, createdAt int64,
) Event {
	return Event{
		id: id, title: title, description: description,
		date: date, time: timeStr, location: loc,
		tags: tags, imageURL: imageURL, createdBy: createdBy, createdAt: createdAt,
	}
}

// ID returns the event identifier.
func (e *Event) ID() string { return e.id }

// Title returns the display title.
func (e *Event) Title() string { return e.title }

// Description returns the display description.
func (e *Event) Description() string { return e.description }

// Date returns the display date string.
func (e *Event) Date() string { return e.date }

// Time returns the display time string.
func (e *Event) Time() string { return e.time }

// Location returns the event location.
func (e *Event) Location() Location { return e.location }

// Tags returns the event's interest tags.
func (e *Event) Tags() []string { return e.tags }

// ImageURL returns the card image URL.
func (e *Event) ImageURL() string { return e.imageURL }

// CreatedBy returns the creating user's id.
func (e *Event) CreatedBy() string { return e.createdBy }

// CreatedAt returns the creation time in unix milliseconds.
func (e *Event) CreatedAt() int64 { return e.createdAt }

func cloneTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	c := make([]string, len(tags))
	copy(c, tags)
	return c
}
