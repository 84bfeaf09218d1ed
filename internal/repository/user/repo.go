// Package user stores user profiles, interaction logs, and membership
// sets.
package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/vuzz-app/vuzz/internal/db"
	"github.com/vuzz-app/vuzz/internal/domain"
	domuser "github.com/vuzz-app/vuzz/internal/domain/user"
)

// store is the consumer interface for user data (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	JSONGetMulti(ctx context.Context, keys []string, path string) ([][]byte, error)
	RPush(ctx context.Context, key string, values ...string) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	SAdd(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements the user-facing storage contracts.
type Repo struct {
	store  store
	prefix string
}

// New creates a user repository.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// Put stores a profile document, overwriting any previous revision.
func (r *Repo) Put(ctx context.Context, p *domuser.Profile) error {
	data, err := json.Marshal(toDTO(p))
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	key := r.profileKey(p.ID())
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return fmt.Errorf("json.set %s: %w", key, err)
	}
	return nil
}

// Get returns a profile by id.
func (r *Repo) Get(ctx context.Context, id string) (domuser.Profile, error) {
	key := r.profileKey(id)
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domuser.Profile{}, domain.ErrUserNotFound
		}
		return domuser.Profile{}, fmt.Errorf("json.get %s: %w", key, err)
	}
	return parseProfile(id, raw)
}

// Interactions returns the user's full decision history. Missing lists
// read as empty, so an unknown user yields a zero state, not an error.
func (r *Repo) Interactions(ctx context.Context, id string) (domuser.InteractionState, error) {
	liked, err := r.store.LRange(ctx, r.likedKey(id), 0, -1)
	if err != nil {
		return domuser.InteractionState{}, fmt.Errorf("lrange liked %s: %w", id, err)
	}
	disliked, err := r.store.LRange(ctx, r.dislikedKey(id), 0, -1)
	if err != nil {
		return domuser.InteractionState{}, fmt.Errorf("lrange disliked %s: %w", id, err)
	}
	return domuser.InteractionState{Liked: liked, Disliked: disliked}, nil
}

// AppendInteraction appends one event id to the liked or disliked log.
// RPUSH is atomic server-side: concurrent decisions append instead of
// overwriting each other, unlike a read-modify-write of the whole list.
func (r *Repo) AppendInteraction(
	ctx context.Context, userID string, decision domain.Decision, eventID string,
) error {
	key := r.likedKey(userID)
	if decision == domain.DecisionDislike {
		key = r.dislikedKey(userID)
	}
	if err := r.store.RPush(ctx, key, eventID); err != nil {
		return fmt.Errorf("rpush %s: %w", key, err)
	}
	return nil
}

// AddUserEvent records that the user signed up for an event (set union,
// duplicate signups collapse).
func (r *Repo) AddUserEvent(ctx context.Context, userID, eventID string) error {
	key := r.eventsKey(userID)
	if err := r.store.SAdd(ctx, key, eventID); err != nil {
		return fmt.Errorf("sadd %s: %w", key, err)
	}
	return nil
}

// UserEventIDs returns the ids of events the user signed up for.
func (r *Repo) UserEventIDs(ctx context.Context, userID string) ([]string, error) {
	ids, err := r.store.SMembers(ctx, r.eventsKey(userID))
	if err != nil {
		return nil, fmt.Errorf("smembers %s: %w", userID, err)
	}
	return ids, nil
}

// AddChatForUser indexes a chat under a participant.
func (r *Repo) AddChatForUser(ctx context.Context, userID, chatID string) error {
	key := r.chatsKey(userID)
	if err := r.store.SAdd(ctx, key, chatID); err != nil {
		return fmt.Errorf("sadd %s: %w", key, err)
	}
	return nil
}

// ChatIDsForUser returns the ids of chats the user participates in.
func (r *Repo) ChatIDsForUser(ctx context.Context, userID string) ([]string, error) {
	ids, err := r.store.SMembers(ctx, r.chatsKey(userID))
	if err != nil {
		return nil, fmt.Errorf("smembers chats %s: %w", userID, err)
	}
	return ids, nil
}

// SearchByUsernamePrefix returns up to limit profiles whose username
// starts with prefix (case-insensitive). The user collection is scanned
// and filtered client-side, matching the store's lack of a text index.
func (r *Repo) SearchByUsernamePrefix(
	ctx context.Context, usernamePrefix string, limit int,
) ([]domuser.Profile, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"users:*")
	if err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}

	// Drop sub-keys (liked/disliked/events/chats) — profiles have no
	// colon after the id segment.
	profileKeys := keys[:0]
	for _, k := range keys {
		if !strings.Contains(k[len(r.prefix+"users:"):], ":") {
			profileKeys = append(profileKeys, k)
		}
	}
	if len(profileKeys) == 0 {
		return nil, nil
	}

	raws, err := r.store.JSONGetMulti(ctx, profileKeys, "$")
	if err != nil {
		return nil, fmt.Errorf("json.get users: %w", err)
	}

	want := strings.ToLower(usernamePrefix)
	var out []domuser.Profile
	for i, raw := range raws {
		if raw == nil {
			continue
		}
		p, err := parseProfile(profileKeys[i][len(r.prefix+"users:"):], raw)
		if err != nil {
			return nil, err
		}
		if want != "" && !strings.HasPrefix(strings.ToLower(p.Username()), want) {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *Repo) profileKey(id string) string {
	return fmt.Sprintf("%susers:%s", r.prefix, id)
}

func (r *Repo) likedKey(id string) string {
	return fmt.Sprintf("%susers:%s:liked", r.prefix, id)
}

func (r *Repo) dislikedKey(id string) string {
	return fmt.Sprintf("%susers:%s:disliked", r.prefix, id)
}

func (r *Repo) eventsKey(id string) string {
	return fmt.Sprintf("%susers:%s:events", r.prefix, id)
}

func (r *Repo) chatsKey(id string) string {
	return fmt.Sprintf("%susers:%s:chats", r.prefix, id)
}
