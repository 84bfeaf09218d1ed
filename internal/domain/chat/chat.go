// Package chat holds the chat and message aggregates.
package chat

import (
	"fmt"
	"strings"

	"github.com/vuzz-app/vuzz/internal/domain"
)

// MaxMessageLen bounds a single message body.
const MaxMessageLen = 4096

// Chat is a two-participant conversation (immutable value object).
// lastMessage/lastMessageAt are denormalized preview fields.
type Chat struct {
	id            string
	participants  [2]string
	createdAt     int64
	lastMessage   string
	lastMessageAt int64
}

// New validates and creates a Chat between two distinct users.
func New(id, a, b string, createdAt int64) (Chat, error) {
	if id == "" {
		return Chat{}, fmt.Errorf("chat ID is required: %w", domain.ErrInvalidInput)
	}
	if a == "" || b == "" {
		return Chat{}, fmt.Errorf("both participants are required: %w", domain.ErrInvalidInput)
	}
	if a == b {
		return Chat{}, fmt.Errorf("participants must differ: %w", domain.ErrInvalidInput)
	}
	return Chat{id: id, participants: PairKeyOrder(a, b), createdAt: createdAt}, nil
}

// Reconstruct creates a Chat without validation (storage hydration).
func Reconstruct(id string, participants [2]string, createdAt int64, lastMessage string, lastMessageAt int64) Chat {
	return Chat{
		id: id, participants: participants, createdAt: createdAt,
		lastMessage: lastMessage, lastMessageAt: lastMessageAt,
	}
}

// PairKeyOrder returns the two participant ids in canonical order, so a
// pair always maps to the same chat regardless of who started it.
func PairKeyOrder(a, b string) [2]string {
	if strings.Compare(a, b) > 0 {
		return [2]string{b, a}
	}
	return [2]string{a, b}
}

// ID returns the chat identifier.
func (c *Chat) ID() string { return c.id }

// Participants returns both participant ids in canonical order.
func (c *Chat) Participants() [2]string { return c.participants }

// Has reports whether userID participates in the chat.
func (c *Chat) Has(userID string) bool {
	return c.participants[0] == userID || c.participants[1] == userID
}

// Other returns the participant that is not userID.
func (c *Chat) Other(userID string) string {
	if c.participants[0] == userID {
		return c.participants[1]
	}
	return c.participants[0]
}

// CreatedAt returns the creation time in unix milliseconds.
func (c *Chat) CreatedAt() int64 { return c.createdAt }

// LastMessage returns the preview text of the latest message.
func (c *Chat) LastMessage() string { return c.lastMessage }

// LastMessageAt returns the latest message time in unix milliseconds.
func (c *Chat) LastMessageAt() int64 { return c.lastMessageAt }

// WithLastMessage returns a copy with updated preview fields.
func (c *Chat) WithLastMessage(text string, at int64) Chat {
	cp := *c
	cp.lastMessage = text
	cp.lastMessageAt = at
	return cp
}

// Message is a single chat message.
type Message struct {
	id       string
	senderID string
	text     string
	sentAt   int64
	read     bool
}

// NewMessage validates and creates a Message.
func NewMessage(id, senderID, text string, sentAt int64) (Message, error) {
	if id == "" {
		return Message{}, fmt.Errorf("message ID is required: %w", domain.ErrInvalidInput)
	}
	if senderID == "" {
		return Message{}, fmt.Errorf("sender is required: %w", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(text) == "" {
		return Message{}, fmt.Errorf("message text is required: %w", domain.ErrInvalidInput)
	}
	if len(text) > MaxMessageLen {
		return Message{}, fmt.Errorf("message too long (max %d): %w", MaxMessageLen, domain.ErrInvalidInput)
	}
	return Message{id: id, senderID: senderID, text: text, sentAt: sentAt}, nil
}

// ReconstructMessage creates a Message without validation.
func ReconstructMessage(id, senderID, text string, sentAt int64, read bool) Message {
	return Message{id: id, senderID: senderID, text: text, sentAt: sentAt, read: read}
}

// ID returns the message identifier.
func (m *Message) ID() string { return m.id }

// SenderID returns the sending user's id.
func (m *Message) SenderID() string { return m.senderID }

// Text returns the message body.
func (m *Message) Text() string { return m.text }

// SentAt returns the send time in unix milliseconds.
func (m *Message) SentAt() int64 { return m.sentAt }

// Read reports whether the recipient has seen the message.
func (m *Message) Read() bool { return m.read }
