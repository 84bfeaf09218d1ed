package user

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/vuzz-app/vuzz/internal/db"
	"github.com/vuzz-app/vuzz/internal/domain"
	domuser "github.com/vuzz-app/vuzz/internal/domain/user"
)

func testProfile(t *testing.T) domuser.Profile {
	t.Helper()
	return domuser.Reconstruct(
		"u1", "ana@example.com", "ana", "Ana", "Lopez", 24,
		"Los Angeles", "CA", 34.0, -118.0,
		[]string{"BeachCleanup"}, "", 1700000000000,
	)
}

func TestPut_WritesProfileKey(t *testing.T) {
	repo, ms := newTestRepo(t)

	var gotKey, gotPath string
	var gotData []byte
	ms.jsonSetFn = func(_ context.Context, key, path string, data []byte) error {
		gotKey, gotPath, gotData = key, path, data
		return nil
	}

	p := testProfile(t)
	if err := repo.Put(context.Background(), &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "vuzz:users:u1" || gotPath != "$" {
		t.Errorf("expected vuzz:users:u1 at $, got %s %s", gotKey, gotPath)
	}

	var dto profileDTO
	if err := json.Unmarshal(gotData, &dto); err != nil {
		t.Fatalf("stored document is not valid JSON: %v", err)
	}
	if dto.Username != "ana" || dto.Latitude != 34.0 {
		t.Errorf("unexpected stored document: %+v", dto)
	}
}

func TestGet_MissingKeyMapsToUserNotFound(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.jsonGetFn = func(_ context.Context, _ string, _ ...string) ([]byte, error) {
		return nil, db.ErrKeyNotFound
	}

	_, err := repo.Get(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGet_ParsesPathWrappedDocument(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.jsonGetFn = func(_ context.Context, _ string, _ ...string) ([]byte, error) {
		// JSON.GET with "$" wraps the document in a one-element array.
		return []byte(`[{"id":"u1","email":"ana@example.com","username":"ana","createdAt":1700000000000}]`), nil
	}

	p, err := repo.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Username() != "ana" {
		t.Errorf("expected username ana, got %q", p.Username())
	}
}

func TestInteractions_ReadsBothLists(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.lrangeFn = func(_ context.Context, key string, start, stop int64) ([]string, error) {
		if start != 0 || stop != -1 {
			t.Errorf("expected full range, got %d %d", start, stop)
		}
		switch key {
		case "vuzz:users:u1:liked":
			return []string{"e1", "e2"}, nil
		case "vuzz:users:u1:disliked":
			return []string{"e3"}, nil
		default:
			t.Errorf("unexpected key %s", key)
			return nil, nil
		}
	}

	state, err := repo.Interactions(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.Liked) != 2 || len(state.Disliked) != 1 {
		t.Errorf("unexpected state: %+v", state)
	}
}

func TestAppendInteraction_RoutesByDecision(t *testing.T) {
	repo, ms := newTestRepo(t)

	var keys []string
	ms.rpushFn = func(_ context.Context, key string, values ...string) error {
		keys = append(keys, key)
		if len(values) != 1 || values[0] != "e1" {
			t.Errorf("expected single value e1, got %v", values)
		}
		return nil
	}

	if err := repo.AppendInteraction(context.Background(), "u1", domain.DecisionLike, "e1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.AppendInteraction(context.Background(), "u1", domain.DecisionDislike, "e1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(keys) != 2 || keys[0] != "vuzz:users:u1:liked" || keys[1] != "vuzz:users:u1:disliked" {
		t.Errorf("unexpected keys: %v", keys)
	}
}

func TestAddUserEvent_UsesSet(t *testing.T) {
	repo, ms := newTestRepo(t)

	var gotKey string
	ms.saddFn = func(_ context.Context, key string, members ...string) error {
		gotKey = key
		return nil
	}

	if err := repo.AddUserEvent(context.Background(), "u1", "e1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "vuzz:users:u1:events" {
		t.Errorf("expected vuzz:users:u1:events, got %s", gotKey)
	}
}

func TestSearchByUsernamePrefix_SkipsSubKeys(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.scanFn = func(_ context.Context, pattern string) ([]string, error) {
		if pattern != "vuzz:users:*" {
			t.Errorf("unexpected pattern %s", pattern)
		}
		return []string{
			"vuzz:users:u1",
			"vuzz:users:u1:liked",
			"vuzz:users:u1:events",
			"vuzz:users:u2",
		}, nil
	}
	ms.jsonGetMultiFn = func(_ context.Context, keys []string, _ string) ([][]byte, error) {
		if len(keys) != 2 {
			t.Fatalf("sub-keys must be filtered before the read, got %v", keys)
		}
		return [][]byte{
			[]byte(`[{"id":"u1","email":"a@b.c","username":"ana"}]`),
			[]byte(`[{"id":"u2","email":"b@b.c","username":"bob"}]`),
		}, nil
	}

	out, err := repo.SearchByUsernamePrefix(context.Background(), "AN", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].Username() != "ana" {
		t.Errorf("expected only ana, got %d results", len(out))
	}
}

func TestSearchByUsernamePrefix_Limit(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.scanFn = func(_ context.Context, _ string) ([]string, error) {
		return []string{"vuzz:users:u1", "vuzz:users:u2", "vuzz:users:u3"}, nil
	}
	ms.jsonGetMultiFn = func(_ context.Context, keys []string, _ string) ([][]byte, error) {
		return [][]byte{
			[]byte(`[{"id":"u1","email":"a@b.c","username":"ana"}]`),
			[]byte(`[{"id":"u2","email":"b@b.c","username":"anita"}]`),
			[]byte(`[{"id":"u3","email":"c@b.c","username":"andre"}]`),
		}, nil
	}

	out, err := repo.SearchByUsernamePrefix(context.Background(), "an", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Errorf("expected limit 2, got %d", len(out))
	}
}
