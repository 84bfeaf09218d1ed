// Package event implements event creation, lookup, and the per-user
// upcoming-events listing.
package event

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	domevent "github.com/vuzz-app/vuzz/internal/domain/event"
)

// Service handles event CRUD and signups.
type Service struct {
	repo          Repository
	signups       SignupStore
	upcomingLimit int
}

// New creates an event service.
func New(repo Repository, signups SignupStore) *Service {
	return &Service{repo: repo, signups: signups, upcomingLimit: 3}
}

// WithUpcomingLimit configures the default upcoming-events page size.
func (s *Service) WithUpcomingLimit(limit int) *Service {
	if limit > 0 {
		s.upcomingLimit = limit
	}
	return s
}

// CreateInput carries the fields of a new event.
type CreateInput struct {
	Title       string
	Description string
	Date        string
	Time        string
	Location    domevent.Location
	Tags        []string
	ImageURL    string
	CreatedBy   string
}

// Create assigns an id and persists a new event.
func (s *Service) Create(ctx context.Context, in CreateInput) (domevent.Event, error) {
	ev, err := domevent.New(
		uuid.NewString(), in.Title, in.Description, in.Date, in.Time,
		in.Location, in.Tags, in.ImageURL, in.CreatedBy, time.Now().UnixMilli(),
	)
	if err != nil {
		return domevent.Event{}, err
	}

	if err := s.repo.Put(ctx, &ev); err != nil {
		return domevent.Event{}, fmt.Errorf("store event: %w", err)
	}
	return ev, nil
}

// Get retrieves an event by id.
func (s *Service) Get(ctx context.Context, id string) (domevent.Event, error) {
	ev, err := s.repo.Get(ctx, id)
	if err != nil {
		return domevent.Event{}, fmt.Errorf("get event: %w", err)
	}
	return ev, nil
}

// List returns every event.
func (s *Service) List(ctx context.Context) ([]domevent.Event, error) {
	events, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// SignUp records the user's attendance for an event. Repeat signups
// collapse (set union).
func (s *Service) SignUp(ctx context.Context, userID, eventID string) error {
	if _, err := s.repo.Get(ctx, eventID); err != nil {
		return fmt.Errorf("get event: %w", err)
	}
	if err := s.signups.AddUserEvent(ctx, userID, eventID); err != nil {
		return fmt.Errorf("add signup: %w", err)
	}
	return nil
}

// Upcoming returns the user's signed-up events sorted by date, nearest
// first, capped at limit (0 = configured default).
func (s *Service) Upcoming(ctx context.Context, userID string, limit int) ([]domevent.Event, error) {
	if limit <= 0 {
		limit = s.upcomingLimit
	}

	ids, err := s.signups.UserEventIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user event ids: %w", err)
	}
	events, err := s.repo.GetMulti(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get user events: %w", err)
	}

	sortByDate(events)
	if len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

// dateLayouts are the display-date formats accepted for sorting. Dates
// are stored as display strings; unparsable ones sort last, by string.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

func sortByDate(events []domevent.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		ti, oki := parseDate(events[i].Date())
		tj, okj := parseDate(events[j].Date())
		switch {
		case oki && okj:
			return ti.Before(tj)
		case oki:
			return true
		case okj:
			return false
		default:
			return events[i].Date() < events[j].Date()
		}
	})
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
