// Package chat implements one-to-one conversations: starting a chat,
// sending messages, and listing a user's chat previews.
package chat

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vuzz-app/vuzz/internal/domain"
	domchat "github.com/vuzz-app/vuzz/internal/domain/chat"
)

// Service handles chat operations.
type Service struct {
	repo        Repository
	memberships MembershipStore
	users       UserSource
	logger      *zap.Logger
	pageSize    int
}

// New creates a chat service.
func New(repo Repository, memberships MembershipStore, users UserSource, logger *zap.Logger) *Service {
	return &Service{
		repo:        repo,
		memberships: memberships,
		users:       users,
		logger:      logger,
	}
}

// WithPageSize configures the default message page size (0 = full history).
func (s *Service) WithPageSize(n int) *Service {
	if n > 0 {
		s.pageSize = n
	}
	return s
}

// Start opens a chat between two users, returning the existing one if
// the pair already has a chat. Both users must exist.
func (s *Service) Start(ctx context.Context, userID, otherID string) (domchat.Chat, error) {
	if _, err := s.users.Get(ctx, userID); err != nil {
		return domchat.Chat{}, fmt.Errorf("get initiator: %w", err)
	}
	if _, err := s.users.Get(ctx, otherID); err != nil {
		return domchat.Chat{}, fmt.Errorf("get counterpart: %w", err)
	}

	if existing, ok, err := s.findExisting(ctx, userID, otherID); err != nil {
		return domchat.Chat{}, err
	} else if ok {
		return existing, nil
	}

	c, err := domchat.New(uuid.NewString(), userID, otherID, time.Now().UnixMilli())
	if err != nil {
		return domchat.Chat{}, err
	}
	if err := s.repo.Put(ctx, &c); err != nil {
		return domchat.Chat{}, fmt.Errorf("store chat: %w", err)
	}
	for _, id := range c.Participants() {
		if err := s.memberships.AddChatForUser(ctx, id, c.ID()); err != nil {
			return domchat.Chat{}, fmt.Errorf("add chat membership: %w", err)
		}
	}
	return c, nil
}

// findExisting scans the initiator's chats for one with the same pair.
func (s *Service) findExisting(ctx context.Context, userID, otherID string) (domchat.Chat, bool, error) {
	ids, err := s.memberships.ChatIDsForUser(ctx, userID)
	if err != nil {
		return domchat.Chat{}, false, fmt.Errorf("chat ids: %w", err)
	}
	chats, err := s.repo.GetMulti(ctx, ids)
	if err != nil {
		return domchat.Chat{}, false, fmt.Errorf("get chats: %w", err)
	}

	pair := domchat.PairKeyOrder(userID, otherID)
	for _, c := range chats {
		if c.Participants() == pair {
			return c, true, nil
		}
	}
	return domchat.Chat{}, false, nil
}

// Send appends a message to the chat and refreshes its preview fields.
// The sender must be a participant.
func (s *Service) Send(ctx context.Context, chatID, senderID, text string) (domchat.Message, error) {
	c, err := s.repo.Get(ctx, chatID)
	if err != nil {
		return domchat.Message{}, fmt.Errorf("get chat: %w", err)
	}
	if !c.Has(senderID) {
		return domchat.Message{}, fmt.Errorf("user %s: %w", senderID, domain.ErrNotParticipant)
	}

	m, err := domchat.NewMessage(uuid.NewString(), senderID, text, time.Now().UnixMilli())
	if err != nil {
		return domchat.Message{}, err
	}
	if err := s.repo.AppendMessage(ctx, chatID, &m); err != nil {
		return domchat.Message{}, fmt.Errorf("append message: %w", err)
	}

	// Preview update is best-effort: the message itself is already
	// durable in the log.
	preview := c.WithLastMessage(m.Text(), m.SentAt())
	if err := s.repo.Put(ctx, &preview); err != nil {
		s.logger.Warn("chat preview update failed",
			zap.String("chat_id", chatID),
			zap.Error(err),
		)
	}
	return m, nil
}

// History returns the chat's messages in send order. The caller must be
// a participant. limit <= 0 uses the configured page size.
func (s *Service) History(ctx context.Context, chatID, userID string, limit int) ([]domchat.Message, error) {
	c, err := s.repo.Get(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("get chat: %w", err)
	}
	if !c.Has(userID) {
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotParticipant)
	}
	if limit <= 0 {
		limit = s.pageSize
	}

	msgs, err := s.repo.Messages(ctx, chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("get messages: %w", err)
	}
	return msgs, nil
}

// Preview is one row of a user's chat list.
type Preview struct {
	Chat          domchat.Chat
	OtherID       string
	OtherUsername string
	MessageCount  int64
}

// Previews lists the user's chats, newest activity first. Counterpart
// usernames that fail to resolve are left empty rather than failing the
// whole listing.
func (s *Service) Previews(ctx context.Context, userID string) ([]Preview, error) {
	ids, err := s.memberships.ChatIDsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("chat ids: %w", err)
	}
	chats, err := s.repo.GetMulti(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get chats: %w", err)
	}

	previews := make([]Preview, 0, len(chats))
	for _, c := range chats {
		p := Preview{Chat: c, OtherID: c.Other(userID)}
		other, err := s.users.Get(ctx, p.OtherID)
		switch {
		case err == nil:
			p.OtherUsername = other.Username()
		case errors.Is(err, domain.ErrUserNotFound):
			// deleted counterpart, keep the row
		default:
			s.logger.Warn("counterpart lookup failed",
				zap.String("chat_id", c.ID()),
				zap.String("user_id", p.OtherID),
				zap.Error(err),
			)
		}
		if n, err := s.repo.MessageCount(ctx, c.ID()); err == nil {
			p.MessageCount = n
		} else {
			s.logger.Warn("message count failed",
				zap.String("chat_id", c.ID()),
				zap.Error(err),
			)
		}
		previews = append(previews, p)
	}

	sort.SliceStable(previews, func(i, j int) bool {
		return previews[i].Chat.LastMessageAt() > previews[j].Chat.LastMessageAt()
	})
	return previews, nil
}
