package chat

import (
	"context"

	domchat "github.com/vuzz-app/vuzz/internal/domain/chat"
	domuser "github.com/vuzz-app/vuzz/internal/domain/user"
)

// Repository defines the storage contract for chats and messages.
type Repository interface {
	Put(ctx context.Context, c *domchat.Chat) error
	Get(ctx context.Context, id string) (domchat.Chat, error)
	GetMulti(ctx context.Context, ids []string) ([]domchat.Chat, error)
	AppendMessage(ctx context.Context, chatID string, m *domchat.Message) error
	Messages(ctx context.Context, chatID string, limit int) ([]domchat.Message, error)
	MessageCount(ctx context.Context, chatID string) (int64, error)
}

// MembershipStore tracks which chats each user belongs to.
type MembershipStore interface {
	AddChatForUser(ctx context.Context, userID, chatID string) error
	ChatIDsForUser(ctx context.Context, userID string) ([]string, error)
}

// UserSource resolves counterpart profiles for chat previews.
type UserSource interface {
	Get(ctx context.Context, id string) (domuser.Profile, error)
}
