// Package chat stores chat documents and their append-only message logs.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vuzz-app/vuzz/internal/db"
	"github.com/vuzz-app/vuzz/internal/domain"
	domchat "github.com/vuzz-app/vuzz/internal/domain/chat"
)

// store is the consumer interface for chats (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	JSONGetMulti(ctx context.Context, keys []string, path string) ([][]byte, error)
	RPush(ctx context.Context, key string, values ...string) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	LLen(ctx context.Context, key string) (int64, error)
}

// Repo implements usecase/chat.Repository.
type Repo struct {
	store  store
	prefix string
}

// New creates a chat repository.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// Put stores a chat document, overwriting any previous revision.
func (r *Repo) Put(ctx context.Context, c *domchat.Chat) error {
	data, err := json.Marshal(toDTO(c))
	if err != nil {
		return fmt.Errorf("marshal chat: %w", err)
	}
	key := r.chatKey(c.ID())
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return fmt.Errorf("json.set %s: %w", key, err)
	}
	return nil
}

// Get returns a chat by id.
func (r *Repo) Get(ctx context.Context, id string) (domchat.Chat, error) {
	key := r.chatKey(id)
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domchat.Chat{}, domain.ErrChatNotFound
		}
		return domchat.Chat{}, fmt.Errorf("json.get %s: %w", key, err)
	}
	return parseChat(id, raw)
}

// GetMulti returns the chats for the given ids, skipping missing ones.
func (r *Repo) GetMulti(ctx context.Context, ids []string) ([]domchat.Chat, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.chatKey(id)
	}

	raws, err := r.store.JSONGetMulti(ctx, keys, "$")
	if err != nil {
		return nil, fmt.Errorf("json.get chats: %w", err)
	}

	chats := make([]domchat.Chat, 0, len(raws))
	for i, raw := range raws {
		if raw == nil {
			continue
		}
		c, err := parseChat(ids[i], raw)
		if err != nil {
			return nil, err
		}
		chats = append(chats, c)
	}
	return chats, nil
}

// AppendMessage appends one message to the chat's log. The append is a
// single atomic RPUSH; message order is the append order.
func (r *Repo) AppendMessage(ctx context.Context, chatID string, m *domchat.Message) error {
	data, err := json.Marshal(messageToDTO(m))
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	key := r.messagesKey(chatID)
	if err := r.store.RPush(ctx, key, string(data)); err != nil {
		return fmt.Errorf("rpush %s: %w", key, err)
	}
	return nil
}

// Messages returns the chat's messages in send order. limit > 0 returns
// only the newest limit messages.
func (r *Repo) Messages(ctx context.Context, chatID string, limit int) ([]domchat.Message, error) {
	start := int64(0)
	if limit > 0 {
		start = int64(-limit)
	}
	raws, err := r.store.LRange(ctx, r.messagesKey(chatID), start, -1)
	if err != nil {
		return nil, fmt.Errorf("lrange messages %s: %w", chatID, err)
	}

	msgs := make([]domchat.Message, 0, len(raws))
	for _, raw := range raws {
		m, err := parseMessage([]byte(raw))
		if err != nil {
			return nil, fmt.Errorf("chat %s: %w", chatID, err)
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

// MessageCount returns the number of messages in the chat.
func (r *Repo) MessageCount(ctx context.Context, chatID string) (int64, error) {
	n, err := r.store.LLen(ctx, r.messagesKey(chatID))
	if err != nil {
		return 0, fmt.Errorf("llen messages %s: %w", chatID, err)
	}
	return n, nil
}

func (r *Repo) chatKey(id string) string {
	return fmt.Sprintf("%schats:%s", r.prefix, id)
}

func (r *Repo) messagesKey(id string) string {
	return fmt.Sprintf("%schats:%s:messages", r.prefix, id)
}
