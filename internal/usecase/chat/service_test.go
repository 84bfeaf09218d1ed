package chat

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/vuzz-app/vuzz/internal/domain"
	domchat "github.com/vuzz-app/vuzz/internal/domain/chat"
	domuser "github.com/vuzz-app/vuzz/internal/domain/user"
)

// --- Mocks ---

type mockRepo struct {
	stored    []domchat.Chat
	getResult domchat.Chat
	getErr    error
	multi     []domchat.Chat
	multiErr  error
	appended  []domchat.Message
	appendErr error
	messages  []domchat.Message
	putErr    error
	counts    map[string]int64
}

func (m *mockRepo) Put(_ context.Context, c *domchat.Chat) error {
	m.stored = append(m.stored, *c)
	return m.putErr
}

func (m *mockRepo) Get(_ context.Context, _ string) (domchat.Chat, error) {
	return m.getResult, m.getErr
}

func (m *mockRepo) GetMulti(_ context.Context, _ []string) ([]domchat.Chat, error) {
	return m.multi, m.multiErr
}

func (m *mockRepo) AppendMessage(_ context.Context, _ string, msg *domchat.Message) error {
	m.appended = append(m.appended, *msg)
	return m.appendErr
}

func (m *mockRepo) Messages(_ context.Context, _ string, _ int) ([]domchat.Message, error) {
	return m.messages, nil
}

func (m *mockRepo) MessageCount(_ context.Context, chatID string) (int64, error) {
	return m.counts[chatID], nil
}

type mockMemberships struct {
	added [][2]string
	ids   []string
	err   error
}

func (m *mockMemberships) AddChatForUser(_ context.Context, userID, chatID string) error {
	m.added = append(m.added, [2]string{userID, chatID})
	return m.err
}

func (m *mockMemberships) ChatIDsForUser(_ context.Context, _ string) ([]string, error) {
	return m.ids, m.err
}

type mockUsers struct {
	profiles map[string]domuser.Profile
	err      error
}

func (m *mockUsers) Get(_ context.Context, id string) (domuser.Profile, error) {
	if m.err != nil {
		return domuser.Profile{}, m.err
	}
	p, ok := m.profiles[id]
	if !ok {
		return domuser.Profile{}, domain.ErrUserNotFound
	}
	return p, nil
}

func knownUsers(t *testing.T, ids ...string) *mockUsers {
	t.Helper()
	profiles := make(map[string]domuser.Profile, len(ids))
	for _, id := range ids {
		profiles[id] = domuser.Reconstruct(
			id, id+"@example.com", id, "", "", 25, "", "", 0, 0, nil, "", 0,
		)
	}
	return &mockUsers{profiles: profiles}
}

func makeChat(t *testing.T, id, a, b string, lastAt int64) domchat.Chat {
	t.Helper()
	return domchat.Reconstruct(id, domchat.PairKeyOrder(a, b), 1700000000000, "", lastAt)
}

// --- Start ---

func TestStart_CreatesChat(t *testing.T) {
	repo := &mockRepo{}
	memberships := &mockMemberships{}
	svc := New(repo, memberships, knownUsers(t, "a", "b"), zap.NewNop())

	c, err := svc.Start(context.Background(), "a", "b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID() == "" {
		t.Error("expected a server-assigned id")
	}
	if len(repo.stored) != 1 {
		t.Fatalf("expected chat persisted once, got %d", len(repo.stored))
	}
	if len(memberships.added) != 2 {
		t.Errorf("expected membership for both participants, got %d", len(memberships.added))
	}
}

func TestStart_ReturnsExistingPair(t *testing.T) {
	existing := makeChat(t, "c1", "a", "b", 0)
	repo := &mockRepo{multi: []domchat.Chat{existing}}
	memberships := &mockMemberships{ids: []string{"c1"}}
	svc := New(repo, memberships, knownUsers(t, "a", "b"), zap.NewNop())

	// Started from the other side of the pair.
	c, err := svc.Start(context.Background(), "b", "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID() != "c1" {
		t.Errorf("expected the existing chat, got %s", c.ID())
	}
	if len(repo.stored) != 0 {
		t.Error("existing pair must not create a new chat")
	}
}

func TestStart_UnknownUser(t *testing.T) {
	svc := New(&mockRepo{}, &mockMemberships{}, knownUsers(t, "a"), zap.NewNop())

	_, err := svc.Start(context.Background(), "a", "ghost")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestStart_SelfChat(t *testing.T) {
	svc := New(&mockRepo{}, &mockMemberships{}, knownUsers(t, "a"), zap.NewNop())

	_, err := svc.Start(context.Background(), "a", "a")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

// --- Send ---

func TestSend_AppendsAndUpdatesPreview(t *testing.T) {
	repo := &mockRepo{getResult: makeChat(t, "c1", "a", "b", 0)}
	svc := New(repo, &mockMemberships{}, knownUsers(t, "a", "b"), zap.NewNop())

	m, err := svc.Send(context.Background(), "c1", "a", "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Text() != "hello" || m.SenderID() != "a" {
		t.Errorf("unexpected message: %+v", m)
	}
	if len(repo.appended) != 1 {
		t.Fatalf("expected one append, got %d", len(repo.appended))
	}
	if len(repo.stored) != 1 || repo.stored[0].LastMessage() != "hello" {
		t.Error("chat preview should be refreshed")
	}
}

func TestSend_NonParticipant(t *testing.T) {
	repo := &mockRepo{getResult: makeChat(t, "c1", "a", "b", 0)}
	svc := New(repo, &mockMemberships{}, knownUsers(t, "a", "b", "c"), zap.NewNop())

	_, err := svc.Send(context.Background(), "c1", "c", "hi")
	if !errors.Is(err, domain.ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
	if len(repo.appended) != 0 {
		t.Error("non-participant message must not be appended")
	}
}

func TestSend_PreviewFailureIsNotFatal(t *testing.T) {
	repo := &mockRepo{
		getResult: makeChat(t, "c1", "a", "b", 0),
		putErr:    errors.New("json.set failed"),
	}
	svc := New(repo, &mockMemberships{}, knownUsers(t, "a", "b"), zap.NewNop())

	if _, err := svc.Send(context.Background(), "c1", "a", "hello"); err != nil {
		t.Errorf("preview failure must not surface, got %v", err)
	}
	if len(repo.appended) != 1 {
		t.Error("message must still be appended")
	}
}

// --- History ---

func TestHistory_NonParticipant(t *testing.T) {
	repo := &mockRepo{getResult: makeChat(t, "c1", "a", "b", 0)}
	svc := New(repo, &mockMemberships{}, knownUsers(t, "a", "b"), zap.NewNop())

	_, err := svc.History(context.Background(), "c1", "c", 0)
	if !errors.Is(err, domain.ErrNotParticipant) {
		t.Errorf("expected ErrNotParticipant, got %v", err)
	}
}

func TestHistory_MissingChat(t *testing.T) {
	repo := &mockRepo{getErr: domain.ErrChatNotFound}
	svc := New(repo, &mockMemberships{}, knownUsers(t), zap.NewNop())

	_, err := svc.History(context.Background(), "ghost", "a", 0)
	if !errors.Is(err, domain.ErrChatNotFound) {
		t.Errorf("expected ErrChatNotFound, got %v", err)
	}
}

// --- Previews ---

func TestPreviews_SortedByActivity(t *testing.T) {
	repo := &mockRepo{
		multi: []domchat.Chat{
			makeChat(t, "c1", "a", "b", 100),
			makeChat(t, "c2", "a", "c", 300),
			makeChat(t, "c3", "a", "d", 200),
		},
		counts: map[string]int64{"c2": 7},
	}
	memberships := &mockMemberships{ids: []string{"c1", "c2", "c3"}}
	svc := New(repo, memberships, knownUsers(t, "a", "b", "c", "d"), zap.NewNop())

	previews, err := svc.Previews(context.Background(), "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"c2", "c3", "c1"}
	for i, id := range want {
		if previews[i].Chat.ID() != id {
			t.Errorf("position %d: expected %s, got %s", i, id, previews[i].Chat.ID())
		}
	}
	if previews[0].OtherID != "c" || previews[0].OtherUsername != "c" {
		t.Errorf("unexpected counterpart: %+v", previews[0])
	}
	if previews[0].MessageCount != 7 {
		t.Errorf("expected message count 7, got %d", previews[0].MessageCount)
	}
}

func TestPreviews_DeletedCounterpartKeepsRow(t *testing.T) {
	repo := &mockRepo{multi: []domchat.Chat{makeChat(t, "c1", "a", "gone", 0)}}
	memberships := &mockMemberships{ids: []string{"c1"}}
	svc := New(repo, memberships, knownUsers(t, "a"), zap.NewNop())

	previews, err := svc.Previews(context.Background(), "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(previews) != 1 {
		t.Fatalf("expected 1 preview, got %d", len(previews))
	}
	if previews[0].OtherUsername != "" {
		t.Errorf("deleted counterpart should leave username empty, got %q", previews[0].OtherUsername)
	}
}
