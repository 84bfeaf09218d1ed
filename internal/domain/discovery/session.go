// Package discovery holds the discovery session and its filter predicates.
package discovery

import (
	"github.com/vuzz-app/vuzz/internal/domain/event"
)

// Session is the filtered, ordered, cursor-tracked candidate list
// produced by one fetch. Candidates are fixed at fetch time; the only
// mutation is cursor advancement. A session is Active while
// cursor < len(candidates) and Exhausted once cursor == len(candidates);
// the only way out of Exhausted is a fresh fetch.
type Session struct {
	candidates     []event.Event
	cursor         int
	locationFilter bool
	tagFilter      bool
}

// NewSession creates a session positioned at the first candidate.
func NewSession(candidates []event.Event, locationFilter, tagFilter bool) *Session {
	return &Session{
		candidates:     candidates,
		locationFilter: locationFilter,
		tagFilter:      tagFilter,
	}
}

// Current returns the candidate under the cursor, or ok=false when the
// session is exhausted.
func (s *Session) Current() (event.Event, bool) {
	if s.cursor >= len(s.candidates) {
		return event.Event{}, false
	}
	return s.candidates[s.cursor], true
}

// PeekNext returns the candidate after the current one without moving
// the cursor. Used to pre-render the next card.
func (s *Session) PeekNext() (event.Event, bool) {
	if s.cursor+1 >= len(s.candidates) {
		return event.Event{}, false
	}
	return s.candidates[s.cursor+1], true
}

// Advance moves the cursor past the current candidate and returns it.
// ok=false means the session was already exhausted and nothing moved.
func (s *Session) Advance() (event.Event, bool) {
	cur, ok := s.Current()
	if !ok {
		return event.Event{}, false
	}
	s.cursor++
	return cur, true
}

// Exhausted reports whether the cursor has run past the last candidate.
func (s *Session) Exhausted() bool { return s.cursor >= len(s.candidates) }

// Cursor returns the zero-based position in the candidate list.
func (s *Session) Cursor() int { return s.cursor }

// Len returns the total number of candidates fetched.
func (s *Session) Len() int { return len(s.candidates) }

// Remaining returns how many candidates are left, current included.
func (s *Session) Remaining() int {
	if s.Exhausted() {
		return 0
	}
	return len(s.candidates) - s.cursor
}

// LocationFilter reports whether the proximity predicate was applied.
func (s *Session) LocationFilter() bool { return s.locationFilter }

// TagFilter reports whether the tag-overlap predicate was applied.
func (s *Session) TagFilter() bool { return s.tagFilter }
