// Package event stores event documents in the JSON store.
package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vuzz-app/vuzz/internal/db"
	"github.com/vuzz-app/vuzz/internal/domain"
	domevent "github.com/vuzz-app/vuzz/internal/domain/event"
)

// store is the consumer interface for events (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	JSONGetMulti(ctx context.Context, keys []string, path string) ([][]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/event.Repository.
type Repo struct {
	store  store
	prefix string
}

// New creates an event repository. prefix is the global key prefix
// (e.g. "vuzz:").
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// Put stores an event document, overwriting any previous revision.
func (r *Repo) Put(ctx context.Context, ev *domevent.Event) error {
	data, err := json.Marshal(toDTO(ev))
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	key := r.key(ev.ID())
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return fmt.Errorf("json.set %s: %w", key, err)
	}
	return nil
}

// Get returns an event by id.
func (r *Repo) Get(ctx context.Context, id string) (domevent.Event, error) {
	key := r.key(id)
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domevent.Event{}, domain.ErrEventNotFound
		}
		return domevent.Event{}, fmt.Errorf("json.get %s: %w", key, err)
	}
	return parseEvent(id, raw)
}

// All returns every event in the store, in the store's natural key
// iteration order. The events collection is small; no pagination.
func (r *Repo) All(ctx context.Context) ([]domevent.Event, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"events:*")
	if err != nil {
		return nil, fmt.Errorf("scan events: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	raws, err := r.store.JSONGetMulti(ctx, keys, "$")
	if err != nil {
		return nil, fmt.Errorf("json.get events: %w", err)
	}

	events := make([]domevent.Event, 0, len(raws))
	for i, raw := range raws {
		if raw == nil {
			continue // deleted between scan and fetch
		}
		ev, err := parseEvent(idFromKey(keys[i], r.prefix), raw)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// GetMulti returns the events for the given ids, skipping missing ones.
func (r *Repo) GetMulti(ctx context.Context, ids []string) ([]domevent.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.key(id)
	}

	raws, err := r.store.JSONGetMulti(ctx, keys, "$")
	if err != nil {
		return nil, fmt.Errorf("json.get events: %w", err)
	}

	events := make([]domevent.Event, 0, len(raws))
	for i, raw := range raws {
		if raw == nil {
			continue
		}
		ev, err := parseEvent(ids[i], raw)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// Delete removes an event.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := r.key(id)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrEventNotFound
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

func (r *Repo) key(id string) string {
	return fmt.Sprintf("%sevents:%s", r.prefix, id)
}

func idFromKey(key, prefix string) string {
	return key[len(prefix+"events:"):]
}
