// Package discovery implements the discovery engine and decision
// recorder: it builds filtered candidate sessions and records swipe
// outcomes back to storage.
package discovery

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/vuzz-app/vuzz/internal/domain"
	domdiscovery "github.com/vuzz-app/vuzz/internal/domain/discovery"
	"github.com/vuzz-app/vuzz/internal/domain/event"
	"github.com/vuzz-app/vuzz/internal/domain/tag"
	"github.com/vuzz-app/vuzz/internal/metrics"
)

// Service holds one live discovery session per user. Sessions are
// replaced wholesale on every fetch (initial load, manual refresh,
// filter toggle); cursor advancement within a session is strictly
// sequential under the service mutex.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*domdiscovery.Session

	events EventSource
	users  UserSource
	logger *zap.Logger
}

// New creates the discovery service.
func New(events EventSource, users UserSource, logger *zap.Logger) *Service {
	return &Service{
		sessions: make(map[string]*domdiscovery.Session),
		events:   events,
		users:    users,
		logger:   logger,
	}
}

// Snapshot is the render-facing view of a session: the current and next
// candidates plus position counters.
type Snapshot struct {
	Current        *event.Event
	Next           *event.Event
	Cursor         int
	Total          int
	Remaining      int
	Exhausted      bool
	LocationFilter bool
	TagFilter      bool
}

// FetchCandidates builds a fresh session for the user and installs it,
// discarding any prior session (including its cursor position).
//
// A store read failure degrades to an empty session rather than an
// error: the presentation surface renders it as an exhausted queue with
// a refresh affordance. A missing user reads as an empty interaction
// history with no tags at coordinate (0,0).
func (s *Service) FetchCandidates(
	ctx context.Context, userID string, locationFilter, tagFilter bool,
) Snapshot {
	profile, err := s.users.Get(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return s.installEmpty(userID, locationFilter, tagFilter, "load user", err)
	}

	history, err := s.users.Interactions(ctx, userID)
	if err != nil {
		return s.installEmpty(userID, locationFilter, tagFilter, "load interactions", err)
	}

	all, err := s.events.All(ctx)
	if err != nil {
		return s.installEmpty(userID, locationFilter, tagFilter, "load events", err)
	}

	interacted := history.InteractedSet()
	candidates := make([]event.Event, 0, len(all))
	for _, ev := range all {
		if _, seen := interacted[ev.ID()]; seen {
			continue
		}
		if locationFilter {
			loc := ev.Location()
			if !domdiscovery.WithinProximity(
				profile.Latitude(), profile.Longitude(), loc.Latitude, loc.Longitude,
			) {
				continue
			}
		}
		if tagFilter && !tag.Intersects(ev.Tags(), profile.Tags()) {
			continue
		}
		candidates = append(candidates, ev)
	}

	metrics.SessionsTotal.WithLabelValues(
		strconv.FormatBool(locationFilter), strconv.FormatBool(tagFilter),
	).Inc()
	s.logger.Debug("discovery session created",
		zap.String("user_id", userID),
		zap.Int("candidates", len(candidates)),
		zap.Int("interacted", len(interacted)),
		zap.Bool("location_filter", locationFilter),
		zap.Bool("tag_filter", tagFilter),
	)

	return s.install(userID, domdiscovery.NewSession(candidates, locationFilter, tagFilter))
}

// Snapshot returns the current view of the user's session.
func (s *Service) Snapshot(userID string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return Snapshot{}, domain.ErrNoSession
	}
	return snapshotOf(sess), nil
}

// RecordDecision advances the session cursor past the current candidate
// and appends the decision to the user's interaction history.
//
// The cursor advance is optimistic: it happens before the write, and a
// failed write is logged and counted but never rolled back, so the
// persisted history can trail what the user was shown. Preserved from
// the original design; see DESIGN.md.
func (s *Service) RecordDecision(ctx context.Context, userID string, decision domain.Decision) (Snapshot, error) {
	s.mu.Lock()
	sess, ok := s.sessions[userID]
	if !ok {
		s.mu.Unlock()
		return Snapshot{}, domain.ErrNoSession
	}
	cur, ok := sess.Advance()
	snap := snapshotOf(sess)
	s.mu.Unlock()

	if !ok {
		return snap, domain.ErrSessionExhausted
	}

	metrics.DecisionsTotal.WithLabelValues(string(decision)).Inc()

	if err := s.users.AppendInteraction(ctx, userID, decision, cur.ID()); err != nil {
		metrics.DecisionWriteFailures.Inc()
		s.logger.Error("decision write failed after cursor advance",
			zap.String("user_id", userID),
			zap.String("event_id", cur.ID()),
			zap.String("decision", string(decision)),
			zap.Error(err),
		)
	}

	return snap, nil
}

// DropSession forgets the user's session, if any. Used on logout.
func (s *Service) DropSession(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

func (s *Service) install(userID string, sess *domdiscovery.Session) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = sess
	return snapshotOf(sess)
}

func (s *Service) installEmpty(
	userID string, locationFilter, tagFilter bool, op string, err error,
) Snapshot {
	metrics.FetchFailures.Inc()
	s.logger.Warn("candidate fetch degraded to empty session",
		zap.String("user_id", userID),
		zap.String("op", op),
		zap.Error(err),
	)
	return s.install(userID, domdiscovery.NewSession(nil, locationFilter, tagFilter))
}

func snapshotOf(sess *domdiscovery.Session) Snapshot {
	snap := Snapshot{
		Cursor:         sess.Cursor(),
		Total:          sess.Len(),
		Remaining:      sess.Remaining(),
		Exhausted:      sess.Exhausted(),
		LocationFilter: sess.LocationFilter(),
		TagFilter:      sess.TagFilter(),
	}
	if cur, ok := sess.Current(); ok {
		snap.Current = &cur
	}
	if next, ok := sess.PeekNext(); ok {
		snap.Next = &next
	}
	return snap
}
